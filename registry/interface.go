package registry

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// PropertyKind classifies the declared wire type of a model property.
type PropertyKind int

const (
	// Scalar covers string, integer and boolean properties.
	Scalar PropertyKind = iota
	// Collection covers ordered sequences of values.
	Collection
	// Mapping covers string-keyed maps of values.
	Mapping
	// Object covers references to other named model types.
	Object
)

// String returns the lowercase name of the property kind.
func (k PropertyKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Collection:
		return "collection"
	case Mapping:
		return "mapping"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Property describes a single named field of a model type.
type Property struct {
	// Name is the wire name of the field, e.g. "creationTimestamp".
	Name string

	// Kind is the declared kind of the field value.
	Kind PropertyKind

	// Ref is the model name of the nested type when Kind is Object,
	// e.g. "V1ObjectMeta". Empty otherwise.
	Ref string

	// Mutable reports whether the field may be assigned by callers.
	// Server-assigned fields such as status blocks are not mutable.
	Mutable bool
}

// TypeDescriptor is the static schema entry for one model type. Descriptors
// are registered once at process startup and never change afterwards.
type TypeDescriptor struct {
	// Name is the canonical model name, e.g. "V1Service".
	Name string

	// GVK identifies the type on the wire. Auxiliary nested types that are
	// never addressed directly leave this zero.
	GVK schema.GroupVersionKind

	// Resource is the plural resource name used in endpoint paths,
	// e.g. "services". Empty for auxiliary types.
	Resource string

	// Namespaced reports whether instances live inside a namespace.
	Namespaced bool

	// New constructs an empty instance of the model type. Nil for
	// auxiliary types.
	New func() runtime.Object

	// Properties lists the fields of the type in declaration order.
	Properties []Property
}

// Addressable reports whether the descriptor describes a top-level resource
// that can be operated on, as opposed to an auxiliary nested type.
func (d *TypeDescriptor) Addressable() bool {
	return d.New != nil && d.GVK.Kind != ""
}

// Schema is the read-only descriptor lookup consumed by the sanitizer and
// other walkers that follow nested type references.
type Schema interface {
	// Descriptor returns the descriptor registered under the given
	// canonical model name.
	Descriptor(modelName string) (*TypeDescriptor, bool)
}

// Registry resolves (apiVersion, kind) pairs to model type descriptors and
// enumerates their property tables. Implementations are safe for concurrent
// readers; population is idempotent per type name.
type Registry interface {
	Schema

	// Register adds a type descriptor to the table.
	Register(desc TypeDescriptor) error

	// Resolve canonicalizes the free-form kind and apiVersion into a model
	// name and returns its descriptor. Unknown models yield
	// *errors.UnknownModelError.
	Resolve(apiVersion, kind string) (*TypeDescriptor, error)

	// DescribeProperties returns the property table of the descriptor keyed
	// by field name, validating that every nested type reference resolves.
	// The result is computed once per type name and cached.
	DescribeProperties(desc *TypeDescriptor) (map[string]Property, error)

	// Models returns the canonical names of all registered types.
	Models() []string
}

// Option allows for functional configuration of the registry.
type Option func(*config)

// config holds configuration options for the registry.
type config struct {
	// DefaultAPIVersion is assumed when Resolve is called with an empty
	// apiVersion.
	DefaultAPIVersion string

	// AllowOverwrite permits re-registering an existing model name.
	AllowOverwrite bool
}

// WithDefaultAPIVersion sets the apiVersion assumed when none is supplied.
func WithDefaultAPIVersion(version string) Option {
	return func(c *config) {
		c.DefaultAPIVersion = version
	}
}

// WithOverwrite controls whether registering a duplicate model name
// replaces the existing descriptor instead of failing.
func WithOverwrite(allow bool) Option {
	return func(c *config) {
		c.AllowOverwrite = allow
	}
}
