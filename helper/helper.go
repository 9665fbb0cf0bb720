// Package helper provides kind-bound lifecycle operations on top of the
// type registry and the operation resolver. A Helper is constructed for one
// (apiVersion, kind) pair and exposes Get, Create, Patch and Delete with
// optional best-effort readiness polling.
package helper

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/chouseknecht/openshift-restclient-go/compare"
	oserrors "github.com/chouseknecht/openshift-restclient-go/errors"
	"github.com/chouseknecht/openshift-restclient-go/operations"
	"github.com/chouseknecht/openshift-restclient-go/registry"
	"github.com/chouseknecht/openshift-restclient-go/sanitize"
	"github.com/chouseknecht/openshift-restclient-go/validation"
)

// readyPhase is the status.phase value that marks a phased object as
// available.
const readyPhase = "Active"

// Helper binds one registered kind to the operation tables of an endpoint.
// All methods are safe for concurrent use.
type Helper struct {
	reg    registry.Registry
	groups *operations.GroupSet

	desc  *registry.TypeDescriptor
	props map[string]registry.Property

	// kindToken is the snake-cased operation key, e.g. "config_map".
	kindToken string

	// hasPhase records whether the kind's status schema declares a phase
	// property; it selects the readiness predicate used while waiting.
	hasPhase bool

	validator    validation.Validator
	log          logr.Logger
	pollInterval time.Duration
}

// New creates a Helper for the given kind. The descriptor and its property
// table are resolved eagerly so that schema problems surface at
// construction time rather than on first use.
func New(reg registry.Registry, groups *operations.GroupSet, apiVersion, kind string, opts ...Option) (*Helper, error) {
	desc, err := reg.Resolve(apiVersion, kind)
	if err != nil {
		return nil, err
	}
	props, err := reg.DescribeProperties(desc)
	if err != nil {
		return nil, err
	}

	h := &Helper{
		reg:          reg,
		groups:       groups,
		desc:         desc,
		props:        props,
		kindToken:    registry.SnakeName(desc.Name),
		hasPhase:     registry.StatusReportsPhase(reg, desc),
		log:          logr.Discard(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Descriptor returns the resolved type descriptor.
func (h *Helper) Descriptor() *registry.TypeDescriptor {
	return h.desc
}

// Properties returns the property table of the bound kind, keyed by wire
// name.
func (h *Helper) Properties() map[string]registry.Property {
	return h.props
}

// namespaced reports whether a call that carries the given namespace
// addresses a namespaced operation. An empty namespace selects the
// cluster-scoped table.
func (h *Helper) namespaced(namespace string) bool {
	return namespace != ""
}

// Get fetches the named object. A 404 response is not an error: the method
// returns a nil object so that callers can probe for existence.
func (h *Helper) Get(ctx context.Context, name, namespace string) (runtime.Object, error) {
	op, err := h.groups.Resolve(operations.VerbRead, h.kindToken, h.namespaced(namespace))
	if err != nil {
		return nil, err
	}

	obj, err := op.Invoke(ctx, operations.Request{Name: name, Namespace: namespace})
	if err != nil {
		if oserrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, oserrors.FromStatus(err)
	}
	return obj, nil
}

// Exists reports whether the named object is present.
func (h *Helper) Exists(ctx context.Context, name, namespace string) (bool, error) {
	obj, err := h.Get(ctx, name, namespace)
	if err != nil {
		return false, err
	}
	return obj != nil, nil
}

// Create submits a new object. With WithWait the call polls Get until the
// object reports readiness or the timeout elapses; the timeout is not an
// error and the last observation is returned.
func (h *Helper) Create(ctx context.Context, namespace string, obj runtime.Object, opts ...WriteOption) (runtime.Object, error) {
	options := newWriteOptions(opts)

	if h.validator != nil {
		if err := h.validator.Validate(ctx, obj); err != nil {
			return nil, err
		}
	}

	op, err := h.groups.Resolve(operations.VerbCreate, h.kindToken, h.namespaced(namespace))
	if err != nil {
		return nil, err
	}

	created, err := op.Invoke(ctx, operations.Request{Namespace: namespace, Object: obj})
	if err != nil {
		return nil, oserrors.FromStatus(err)
	}

	if options.Wait {
		name, err := objectName(created)
		if err != nil {
			return created, err
		}
		h.log.V(1).Info("waiting for object to become ready", "kind", h.desc.GVK.Kind, "name", name)
		return h.waitForReady(ctx, name, namespace, options.Timeout, created)
	}
	return created, nil
}

// Patch applies a partial modification to the named object. The payload's
// status subtree and resourceVersion are dropped and server-assigned fields
// are stripped before the request is sent, mirroring what a client-side
// re-submit of a previously fetched object requires.
func (h *Helper) Patch(ctx context.Context, name, namespace string, obj runtime.Object, opts ...WriteOption) (runtime.Object, error) {
	options := newWriteOptions(opts)

	if h.validator != nil {
		if err := h.validator.Validate(ctx, obj); err != nil {
			return nil, err
		}
	}

	body, err := h.prunePatchBody(obj)
	if err != nil {
		return nil, err
	}

	op, err := h.groups.Resolve(operations.VerbPatch, h.kindToken, h.namespaced(namespace))
	if err != nil {
		return nil, err
	}

	h.log.V(1).Info("sending patch", "kind", h.desc.GVK.Kind, "name", name, "namespace", namespace)
	patched, err := op.Invoke(ctx, operations.Request{Name: name, Namespace: namespace, Object: body})
	if err != nil {
		return nil, oserrors.FromStatus(err)
	}

	if options.Wait {
		return h.waitForReady(ctx, name, namespace, options.Timeout, patched)
	}
	return patched, nil
}

// Delete removes the named object. A delete-options payload is attached
// only when the resolved operation accepts one. With WithWait the call
// polls Get until the object is gone or the timeout elapses; the timeout is
// swallowed.
func (h *Helper) Delete(ctx context.Context, name, namespace string, opts ...WriteOption) error {
	options := newWriteOptions(opts)

	op, err := h.groups.Resolve(operations.VerbDelete, h.kindToken, h.namespaced(namespace))
	if err != nil {
		return err
	}

	req := operations.Request{Name: name, Namespace: namespace}
	if op.AcceptsDeleteOptions {
		req.DeleteOptions = &metav1.DeleteOptions{}
	}

	if _, err := op.Invoke(ctx, req); err != nil {
		return oserrors.FromStatus(err)
	}

	if options.Wait {
		h.waitForGone(ctx, name, namespace, options.Timeout)
	}
	return nil
}

// Update is not supported; use Patch. Replacement semantics require a
// read-modify-write cycle the caller is better placed to drive.
func (h *Helper) Update(ctx context.Context, name, namespace string, obj runtime.Object) (runtime.Object, error) {
	return nil, oserrors.ErrNotImplemented
}

// Equal reports whether every field of a is present with the same value in
// b, ignoring fields only b carries.
func (h *Helper) Equal(a, b runtime.Object) (bool, error) {
	return compare.Objects(a, b)
}

// prunePatchBody copies obj and removes the parts the server refuses in a
// patch: the status subtree (when the kind declares one), the
// resourceVersion, and server-assigned timestamps.
func (h *Helper) prunePatchBody(obj runtime.Object) (runtime.Object, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}

	if _, declared := h.props["status"]; declared {
		u["status"] = map[string]interface{}{}
	}
	unstructured.RemoveNestedField(u, "metadata", "resourceVersion")
	sanitize.StripServerAssignedFields(u, h.desc, h.reg)

	body := h.desc.New()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(u, body); err != nil {
		return nil, err
	}
	return body, nil
}

// waitForReady polls Get until the readiness predicate holds or the timeout
// elapses. Exceeding the timeout is not an error: the last observation is
// returned, which may be the object passed in when no poll succeeded.
func (h *Helper) waitForReady(ctx context.Context, name, namespace string, timeout time.Duration, last runtime.Object) (runtime.Object, error) {
	err := wait.PollUntilContextTimeout(ctx, h.pollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			obj, err := h.Get(ctx, name, namespace)
			if err != nil {
				return false, err
			}
			if obj == nil {
				return false, nil
			}
			last = obj
			return h.ready(obj), nil
		})
	if err != nil && !wait.Interrupted(err) {
		return last, err
	}
	return last, nil
}

// waitForGone polls Get until the object disappears. Both the timeout and
// transport errors are swallowed; deletion is eventually observed or not.
func (h *Helper) waitForGone(ctx context.Context, name, namespace string, timeout time.Duration) {
	//nolint:errcheck
	wait.PollUntilContextTimeout(ctx, h.pollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			obj, err := h.Get(ctx, name, namespace)
			if err != nil {
				return false, nil
			}
			return obj == nil, nil
		})
}

// ready is the readiness predicate: phased kinds must report an Active
// phase, all other kinds are ready as soon as they exist.
func (h *Helper) ready(obj runtime.Object) bool {
	if !h.hasPhase {
		return obj != nil
	}
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return false
	}
	phase, found, err := unstructured.NestedString(u, "status", "phase")
	return err == nil && found && phase == readyPhase
}

func objectName(obj runtime.Object) (string, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return "", err
	}
	name, _, err := unstructured.NestedString(u, "metadata", "name")
	return name, err
}
