// Package errors defines the error taxonomy surfaced by the object
// management layer. All errors are returned synchronously to the immediate
// caller with their structured fields intact; none are retried here.
package errors

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrNotImplemented is returned by operations that are reserved for future
// use. Callers must receive a clear failure rather than a silent no-op.
var ErrNotImplemented = errors.New("operation is not implemented")

// UnknownModelError indicates that no model type is registered for the
// requested (apiVersion, kind) pair.
type UnknownModelError struct {
	APIVersion string
	Kind       string
	// ModelName is the canonical model name that was looked up.
	ModelName string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model %s was not found; verify the Kind %q and apiVersion %q are correct",
		e.ModelName, e.Kind, e.APIVersion)
}

// OperationNotFoundError indicates that no API group exposes the expected
// verb/kind operation.
type OperationNotFoundError struct {
	// Method is the synthesized method name, e.g. "read_namespaced_service".
	Method     string
	Kind       string
	Namespaced bool
}

func (e *OperationNotFoundError) Error() string {
	msg := fmt.Sprintf("method %s not found for model %s", e.Method, e.Kind)
	if !e.Namespaced {
		msg += ". Did you forget to include the namespace?"
	}
	return msg
}

// InternalSchemaError indicates that a registered type declares a nested
// type reference that cannot itself be resolved. This is a defensive check
// and is expected never to trigger against a well-formed schema table.
type InternalSchemaError struct {
	TypeName string
	Property string
	Ref      string
}

func (e *InternalSchemaError) Error() string {
	return fmt.Sprintf("schema for %s declares property %q of unresolvable type %s",
		e.TypeName, e.Property, e.Ref)
}

// APIRequestError carries the HTTP-like status code and the server message
// of a failed transport request.
type APIRequestError struct {
	Status  int32
	Message string
}

func (e *APIRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// FromStatus converts a transport-level error into an *APIRequestError,
// preserving the status code and server message. Non-status errors are
// wrapped with a zero status.
func FromStatus(err error) *APIRequestError {
	if err == nil {
		return nil
	}
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		s := status.Status()
		return &APIRequestError{Status: s.Code, Message: s.Message}
	}
	return &APIRequestError{Message: err.Error()}
}

// IsNotFound reports whether err represents a 404-equivalent response from
// either the transport layer or this package.
func IsNotFound(err error) bool {
	if apierrors.IsNotFound(err) {
		return true
	}
	var reqErr *APIRequestError
	return errors.As(err, &reqErr) && reqErr.Status == 404
}

// AsAPIRequestError unwraps err into an *APIRequestError if possible.
func AsAPIRequestError(err error) (*APIRequestError, bool) {
	var reqErr *APIRequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
