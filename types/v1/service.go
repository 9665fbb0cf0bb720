package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// Service exposes a set of endpoints under a stable address. It directly
// uses the standard Kubernetes corev1.Service for full compatibility.
type Service = corev1.Service

// ServiceList represents a list of Service objects.
type ServiceList = corev1.ServiceList

var (
	// ServiceGVK is the GroupVersionKind for Service.
	ServiceGVK = schema.GroupVersionKind{
		Group:   "",
		Version: "v1",
		Kind:    "Service",
	}

	// ServiceGVR is the GroupVersionResource for Service.
	ServiceGVR = schema.GroupVersionResource{
		Group:    "",
		Version:  "v1",
		Resource: "services",
	}
)

// NewService creates a new Service with the given name and namespace.
func NewService(name, namespace string) *Service {
	return &Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}
}

// IsServiceNamespaceScoped returns true as Service is a namespace-scoped
// resource.
func IsServiceNamespaceScoped() bool {
	return true
}

// ServiceDescriptor returns the schema table entry for Service. The status
// block is server-assigned and therefore not mutable.
func ServiceDescriptor() registry.TypeDescriptor {
	return registry.TypeDescriptor{
		Name:       "V1Service",
		GVK:        ServiceGVK,
		Resource:   ServiceGVR.Resource,
		Namespaced: true,
		New:        func() runtime.Object { return &Service{} },
		Properties: []registry.Property{
			{Name: "apiVersion", Kind: registry.Scalar, Mutable: true},
			{Name: "kind", Kind: registry.Scalar, Mutable: true},
			{Name: "metadata", Kind: registry.Object, Ref: "V1ObjectMeta", Mutable: true},
			{Name: "spec", Kind: registry.Object, Ref: "V1ServiceSpec", Mutable: true},
			{Name: "status", Kind: registry.Object, Ref: "V1ServiceStatus"},
		},
	}
}

// ServiceAuxDescriptors returns the auxiliary descriptors referenced by the
// Service property table.
func ServiceAuxDescriptors() []registry.TypeDescriptor {
	return []registry.TypeDescriptor{
		{
			Name: "V1ServiceSpec",
			Properties: []registry.Property{
				{Name: "ports", Kind: registry.Collection, Mutable: true},
				{Name: "selector", Kind: registry.Mapping, Mutable: true},
				{Name: "clusterIP", Kind: registry.Scalar, Mutable: true},
				{Name: "clusterIPs", Kind: registry.Collection, Mutable: true},
				{Name: "type", Kind: registry.Scalar, Mutable: true},
				{Name: "externalIPs", Kind: registry.Collection, Mutable: true},
				{Name: "sessionAffinity", Kind: registry.Scalar, Mutable: true},
				{Name: "loadBalancerIP", Kind: registry.Scalar, Mutable: true},
				{Name: "externalName", Kind: registry.Scalar, Mutable: true},
			},
		},
		{
			Name: "V1ServiceStatus",
			Properties: []registry.Property{
				{Name: "loadBalancer", Kind: registry.Object, Ref: "V1LoadBalancerStatus"},
				{Name: "conditions", Kind: registry.Collection},
			},
		},
		{
			Name: "V1LoadBalancerStatus",
			Properties: []registry.Property{
				{Name: "ingress", Kind: registry.Collection},
			},
		},
	}
}
