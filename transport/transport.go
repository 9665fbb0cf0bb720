// Package transport binds the operation tables to a live cluster endpoint.
// Each API group version gets its own REST client; operations address
// resources by path and speak strategic-merge patch for modifications.
package transport

import (
	"context"

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/rest"

	"github.com/chouseknecht/openshift-restclient-go/operations"
	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// NewGroupSet builds the API group set for every addressable type in the
// registry, backed by per-group-version REST clients derived from cfg. The
// scheme must know every registered type; it drives request and response
// serialization.
func NewGroupSet(cfg *rest.Config, reg registry.Registry, scheme *runtime.Scheme) (*operations.GroupSet, error) {
	codecs := serializer.NewCodecFactory(scheme)

	set := operations.NewGroupSet()
	byVersion := make(map[schema.GroupVersion]*operations.Group)
	clients := make(map[schema.GroupVersion]rest.Interface)

	for _, name := range reg.Models() {
		desc, exists := reg.Descriptor(name)
		if !exists || !desc.Addressable() {
			continue
		}

		gv := desc.GVK.GroupVersion()
		group, exists := byVersion[gv]
		if !exists {
			client, err := restClientFor(cfg, gv, codecs)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to build client for %s", gv)
			}
			group = operations.NewGroup(operations.GroupNameFor(gv))
			byVersion[gv] = group
			clients[gv] = client
			set.Add(group)
		}

		if err := registerKind(group, clients[gv], codecs, gv, desc); err != nil {
			return nil, err
		}
	}

	set.SetGeneric(operations.NewGroup("Api"))
	return set, nil
}

// restClientFor derives a REST client scoped to one group version. The
// legacy core group lives under /api, everything else under /apis.
func restClientFor(cfg *rest.Config, gv schema.GroupVersion, codecs serializer.CodecFactory) (rest.Interface, error) {
	c := rest.CopyConfig(cfg)
	c.GroupVersion = &gv
	if gv.Group == "" {
		c.APIPath = "/api"
	} else {
		c.APIPath = "/apis"
	}
	c.NegotiatedSerializer = codecs.WithoutConversion()
	return rest.RESTClientFor(c)
}

func registerKind(group *operations.Group, client rest.Interface, codecs serializer.CodecFactory, gv schema.GroupVersion, desc *registry.TypeDescriptor) error {
	kind := registry.SnakeName(desc.Name)
	namespaced := desc.Namespaced
	resource := desc.Resource
	encoder := codecs.LegacyCodec(gv)
	newObj := desc.New

	ops := []operations.Operation{
		{
			Verb:       operations.VerbRead,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				obj := newObj()
				err := client.Get().
					NamespaceIfScoped(req.Namespace, namespaced).
					Resource(resource).
					Name(req.Name).
					Do(ctx).
					Into(obj)
				if err != nil {
					return nil, err
				}
				return obj, nil
			},
		},
		{
			Verb:       operations.VerbCreate,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				obj := newObj()
				err := client.Post().
					NamespaceIfScoped(req.Namespace, namespaced).
					Resource(resource).
					Body(req.Object).
					Do(ctx).
					Into(obj)
				if err != nil {
					return nil, err
				}
				return obj, nil
			},
		},
		{
			Verb:       operations.VerbPatch,
			Kind:       kind,
			Namespaced: namespaced,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				body, err := runtime.Encode(encoder, req.Object)
				if err != nil {
					return nil, err
				}
				obj := newObj()
				err = client.Patch(types.StrategicMergePatchType).
					NamespaceIfScoped(req.Namespace, namespaced).
					Resource(resource).
					Name(req.Name).
					Body(body).
					Do(ctx).
					Into(obj)
				if err != nil {
					return nil, err
				}
				return obj, nil
			},
		},
		{
			Verb:                 operations.VerbDelete,
			Kind:                 kind,
			Namespaced:           namespaced,
			AcceptsDeleteOptions: true,
			Invoke: func(ctx context.Context, req operations.Request) (runtime.Object, error) {
				opts := req.DeleteOptions
				if opts == nil {
					opts = &metav1.DeleteOptions{}
				}
				err := client.Delete().
					NamespaceIfScoped(req.Namespace, namespaced).
					Resource(resource).
					Name(req.Name).
					Body(opts).
					Do(ctx).
					Error()
				return nil, err
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
