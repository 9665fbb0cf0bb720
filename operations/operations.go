// Package operations models the verb-to-callable bindings exposed by the
// versioned API groups of a cluster endpoint. Instead of probing live
// client objects for string-assembled method names, each group carries an
// explicit capability table and the resolver selects entries by key.
package operations

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// Verb is one of the lifecycle operations a group can expose for a kind.
type Verb string

const (
	// VerbCreate creates a new object.
	VerbCreate Verb = "create"
	// VerbRead reads a single object by name.
	VerbRead Verb = "read"
	// VerbPatch applies a partial modification to an object.
	VerbPatch Verb = "patch"
	// VerbDelete removes an object.
	VerbDelete Verb = "delete"
)

// Request carries the parameters of a single operation invocation.
type Request struct {
	// Name is the object name; unused for create.
	Name string

	// Namespace is empty for cluster-scoped operations.
	Namespace string

	// Object is the payload for create and patch.
	Object runtime.Object

	// DeleteOptions is supplied only to delete operations that accept a
	// delete-options payload.
	DeleteOptions *metav1.DeleteOptions
}

// Invoker performs one operation against the cluster API. Read, create and
// patch return the resulting object; delete returns a nil object.
type Invoker func(ctx context.Context, req Request) (runtime.Object, error)

// Operation is a resolved callable bound to one verb and one kind. It is
// stateless and safe to reuse across calls.
type Operation struct {
	// Verb is the lifecycle verb this operation performs.
	Verb Verb

	// Kind is the snake-cased kind token, e.g. "config_map".
	Kind string

	// Namespaced reports whether the operation is scoped to a namespace.
	Namespaced bool

	// AcceptsDeleteOptions reports whether the operation takes a
	// delete-options payload. Only meaningful for delete.
	AcceptsDeleteOptions bool

	// Invoke performs the operation.
	Invoke Invoker
}

// MethodName returns the wire-style method name an operation is known by,
// e.g. "read_namespaced_service" or "delete_namespace".
func MethodName(verb Verb, kind string, namespaced bool) string {
	name := string(verb)
	if namespaced {
		name += "_namespaced_"
	} else {
		name += "_"
	}
	return name + kind
}

// MethodName returns the wire-style method name of this operation.
func (o Operation) MethodName() string {
	return MethodName(o.Verb, o.Kind, o.Namespaced)
}
