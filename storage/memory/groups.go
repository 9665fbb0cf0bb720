package memory

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/operations"
	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// NewGroupSet builds a fully functional API group set over the store for
// every addressable type in the registry. Kinds whose status block reports
// a lifecycle phase are activated on create, mimicking a server that
// admits resources immediately. The set carries an empty generic fallback
// group; callers may register additional operations into it.
func NewGroupSet(store *Store, reg registry.Registry) (*operations.GroupSet, error) {
	set := operations.NewGroupSet()
	byVersion := make(map[schema.GroupVersion]*operations.Group)

	for _, name := range reg.Models() {
		desc, exists := reg.Descriptor(name)
		if !exists || !desc.Addressable() {
			continue
		}

		gv := desc.GVK.GroupVersion()
		group, exists := byVersion[gv]
		if !exists {
			group = operations.NewGroup(operations.GroupNameFor(gv))
			byVersion[gv] = group
			set.Add(group)
		}

		if err := registerKind(group, store, reg, desc); err != nil {
			return nil, err
		}
	}

	set.SetGeneric(operations.NewGroup("Api"))
	return set, nil
}

func registerKind(group *operations.Group, store *Store, reg registry.Registry, desc *registry.TypeDescriptor) error {
	kind := registry.SnakeName(desc.Name)
	namespaced := desc.Namespaced
	gr := schema.GroupResource{Group: desc.GVK.Group, Resource: desc.Resource}
	resource := desc.Resource
	hasPhase := registry.StatusReportsPhase(reg, desc)

	ops := []operations.Operation{
		{
			Verb:       operations.VerbRead,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				return store.Get(ctx, gr, resource, req.Namespace, req.Name)
			},
		},
		{
			Verb:       operations.VerbCreate,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				obj := req.Object
				if hasPhase {
					activated, err := withActivePhase(desc, obj)
					if err != nil {
						return nil, err
					}
					obj = activated
				}
				return store.Create(ctx, gr, resource, req.Namespace, obj)
			},
		},
		{
			Verb:       operations.VerbPatch,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				return store.Patch(ctx, gr, resource, req.Namespace, req.Name, req.Object)
			},
		},
		{
			Verb:                 operations.VerbDelete,
			Kind:                 kind,
			Namespaced:           namespaced,
			AcceptsDeleteOptions: true,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				return nil, store.Delete(ctx, gr, resource, req.Namespace, req.Name)
			},
		},
	}

	for _, op := range ops {
		if err := group.Register(op); err != nil {
			return err
		}
	}
	return nil
}

// withActivePhase returns a copy of obj with status.phase set to "Active".
func withActivePhase(desc *registry.TypeDescriptor, obj runtime.Object) (runtime.Object, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	if err := unstructured.SetNestedField(u, "Active", "status", "phase"); err != nil {
		return nil, err
	}
	out := desc.New()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(u, out); err != nil {
		return nil, err
	}
	return out, nil
}
