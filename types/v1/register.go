// Package v1 carries the schema table entries for the core v1 resource
// kinds. Each kind contributes its model alias, GroupVersionKind/Resource,
// constructors and the static property table consumed by the registry.
package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// SchemeGroupVersion is group version used to register these objects.
var SchemeGroupVersion = schema.GroupVersion{Group: "", Version: "v1"}

// Resource takes an unqualified resource and returns a Group qualified
// GroupResource.
func Resource(resource string) schema.GroupResource {
	return SchemeGroupVersion.WithResource(resource).GroupResource()
}

// Kind takes an unqualified kind and returns back a Group qualified
// GroupVersionKind.
func Kind(kind string) schema.GroupVersionKind {
	return SchemeGroupVersion.WithKind(kind)
}

// AddToRegistry registers the descriptors for all core v1 kinds, plus the
// auxiliary nested types their property tables reference.
func AddToRegistry(r registry.Registry) error {
	descriptors := []registry.TypeDescriptor{
		ObjectMetaDescriptor(),
		ServiceDescriptor(),
		NamespaceDescriptor(),
		ConfigMapDescriptor(),
		SecretDescriptor(),
	}
	descriptors = append(descriptors, ServiceAuxDescriptors()...)
	descriptors = append(descriptors, NamespaceAuxDescriptors()...)

	for _, desc := range descriptors {
		if err := r.Register(desc); err != nil {
			return err
		}
	}
	return nil
}

// AddToScheme adds all core v1 resource types to the given scheme so that
// codecs and REST transports can encode and decode them.
func AddToScheme(s *runtime.Scheme) error {
	s.AddKnownTypes(SchemeGroupVersion,
		&Service{},
		&ServiceList{},
		&Namespace{},
		&NamespaceList{},
		&ConfigMap{},
		&ConfigMapList{},
		&Secret{},
		&SecretList{},
	)
	metav1.AddToGroupVersion(s, SchemeGroupVersion)
	return nil
}

// NewRegistry returns a registry pre-populated with all core v1 kinds.
func NewRegistry(opts ...registry.Option) (registry.Registry, error) {
	r := registry.New(opts...)
	if err := AddToRegistry(r); err != nil {
		return nil, err
	}
	return r, nil
}

// NewScheme returns a runtime scheme pre-populated with all core v1 kinds.
func NewScheme() (*runtime.Scheme, error) {
	s := runtime.NewScheme()
	if err := AddToScheme(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetAllGVKs returns all GroupVersionKinds for core resources.
func GetAllGVKs() []schema.GroupVersionKind {
	return []schema.GroupVersionKind{
		ServiceGVK,
		NamespaceGVK,
		ConfigMapGVK,
		SecretGVK,
	}
}
