package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// Secret holds sensitive data such as credentials and keys. It directly
// uses the standard Kubernetes corev1.Secret for full compatibility.
type Secret = corev1.Secret

// SecretList represents a list of Secret objects.
type SecretList = corev1.SecretList

var (
	// SecretGVK is the GroupVersionKind for Secret.
	SecretGVK = schema.GroupVersionKind{
		Group:   "",
		Version: "v1",
		Kind:    "Secret",
	}

	// SecretGVR is the GroupVersionResource for Secret.
	SecretGVR = schema.GroupVersionResource{
		Group:    "",
		Version:  "v1",
		Resource: "secrets",
	}
)

// NewSecret creates a new Secret with the given name and namespace.
func NewSecret(name, namespace string) *Secret {
	return &Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Data: make(map[string][]byte),
	}
}

// IsSecretNamespaceScoped returns true as Secret is a namespace-scoped
// resource.
func IsSecretNamespaceScoped() bool {
	return true
}

// SecretDescriptor returns the schema table entry for Secret.
func SecretDescriptor() registry.TypeDescriptor {
	return registry.TypeDescriptor{
		Name:       "V1Secret",
		GVK:        SecretGVK,
		Resource:   SecretGVR.Resource,
		Namespaced: true,
		New:        func() runtime.Object { return &Secret{} },
		Properties: []registry.Property{
			{Name: "apiVersion", Kind: registry.Scalar, Mutable: true},
			{Name: "kind", Kind: registry.Scalar, Mutable: true},
			{Name: "metadata", Kind: registry.Object, Ref: "V1ObjectMeta", Mutable: true},
			{Name: "data", Kind: registry.Mapping, Mutable: true},
			{Name: "stringData", Kind: registry.Mapping, Mutable: true},
			{Name: "type", Kind: registry.Scalar, Mutable: true},
			{Name: "immutable", Kind: registry.Scalar, Mutable: true},
		},
	}
}
