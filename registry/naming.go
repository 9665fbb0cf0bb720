package registry

import (
	"regexp"
	"strings"

	"github.com/gobuffalo/flect"
)

// versionToken matches a schema version marker at the front of a model
// name, e.g. "V1", "V1beta1", "V2alpha1".
var versionToken = regexp.MustCompile(`^V\d(?:(?:alpha|beta)\d)?`)

// BaseAPIVersion is the schema version assumed when callers do not supply
// one.
const BaseAPIVersion = "v1"

// ModelName builds the canonical model name for an (apiVersion, kind)
// pair. The kind may be free-form (snake case, camel case or capitalized);
// it is normalized to capitalized camel form and prefixed with the
// capitalized apiVersion, e.g. ("v1beta1", "stateful_set") -> "V1beta1StatefulSet".
func ModelName(apiVersion, kind string) string {
	return capitalize(apiVersion) + flect.Pascalize(kind)
}

// CanonicalBaseName strips the version token from the front of a model
// name, producing the version-agnostic base name: "V1beta1StatefulSet" ->
// "StatefulSet". Names without a version token are returned unchanged.
func CanonicalBaseName(modelName string) string {
	return versionToken.ReplaceAllString(modelName, "")
}

// SnakeName returns the version-agnostic base name converted to snake
// case, e.g. "V1ConfigMap" -> "config_map". This is the kind token used in
// synthesized operation method names.
func SnakeName(modelName string) string {
	return flect.Underscore(CanonicalBaseName(modelName))
}

// capitalize upper-cases the first rune and lower-cases the remainder,
// matching the canonical form of version markers ("v1beta1" -> "V1beta1").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
