// Package validation provides optional admission-style validation applied
// to objects before they are written to the cluster.
package validation

import (
	"context"

	"k8s.io/apimachinery/pkg/runtime"
)

// Validator validates an object before a write operation.
type Validator interface {
	// Validate returns a non-nil error when the object must not be
	// written.
	Validate(ctx context.Context, obj runtime.Object) error
}

// Rule is a single CEL admission rule. The expression is evaluated with
// the variable `self` bound to the object's field-to-value mapping form
// and must evaluate to a boolean.
type Rule struct {
	// Expression is the CEL source, e.g.
	// `has(self.metadata.labels) && "app" in self.metadata.labels`.
	Expression string

	// Message is reported when the expression evaluates to false. When
	// empty, the expression itself is reported.
	Message string
}
