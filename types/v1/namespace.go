package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// Namespace partitions the cluster into logical sub-clusters. It directly
// uses the standard Kubernetes corev1.Namespace for full compatibility.
type Namespace = corev1.Namespace

// NamespaceList represents a list of Namespace objects.
type NamespaceList = corev1.NamespaceList

var (
	// NamespaceGVK is the GroupVersionKind for Namespace.
	NamespaceGVK = schema.GroupVersionKind{
		Group:   "",
		Version: "v1",
		Kind:    "Namespace",
	}

	// NamespaceGVR is the GroupVersionResource for Namespace.
	NamespaceGVR = schema.GroupVersionResource{
		Group:    "",
		Version:  "v1",
		Resource: "namespaces",
	}
)

// NewNamespace creates a new Namespace with the given name.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}
}

// IsNamespaceScoped returns false as Namespace is a cluster-scoped
// resource.
func IsNamespaceScoped() bool {
	return false
}

// NamespaceDescriptor returns the schema table entry for Namespace. The
// status block reports the lifecycle phase ("Active", "Terminating") used
// by readiness polling.
func NamespaceDescriptor() registry.TypeDescriptor {
	return registry.TypeDescriptor{
		Name:     "V1Namespace",
		GVK:      NamespaceGVK,
		Resource: NamespaceGVR.Resource,
		New:      func() runtime.Object { return &Namespace{} },
		Properties: []registry.Property{
			{Name: "apiVersion", Kind: registry.Scalar, Mutable: true},
			{Name: "kind", Kind: registry.Scalar, Mutable: true},
			{Name: "metadata", Kind: registry.Object, Ref: "V1ObjectMeta", Mutable: true},
			{Name: "spec", Kind: registry.Object, Ref: "V1NamespaceSpec", Mutable: true},
			{Name: "status", Kind: registry.Object, Ref: "V1NamespaceStatus"},
		},
	}
}

// NamespaceAuxDescriptors returns the auxiliary descriptors referenced by
// the Namespace property table.
func NamespaceAuxDescriptors() []registry.TypeDescriptor {
	return []registry.TypeDescriptor{
		{
			Name: "V1NamespaceSpec",
			Properties: []registry.Property{
				{Name: "finalizers", Kind: registry.Collection, Mutable: true},
			},
		},
		{
			Name: "V1NamespaceStatus",
			Properties: []registry.Property{
				{Name: "phase", Kind: registry.Scalar},
				{Name: "conditions", Kind: registry.Collection},
			},
		},
	}
}
