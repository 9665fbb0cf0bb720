package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// ConfigMap holds non-sensitive configuration data in key-value pairs. It
// directly uses the standard Kubernetes corev1.ConfigMap for full
// compatibility.
type ConfigMap = corev1.ConfigMap

// ConfigMapList represents a list of ConfigMap objects.
type ConfigMapList = corev1.ConfigMapList

var (
	// ConfigMapGVK is the GroupVersionKind for ConfigMap.
	ConfigMapGVK = schema.GroupVersionKind{
		Group:   "",
		Version: "v1",
		Kind:    "ConfigMap",
	}

	// ConfigMapGVR is the GroupVersionResource for ConfigMap.
	ConfigMapGVR = schema.GroupVersionResource{
		Group:    "",
		Version:  "v1",
		Resource: "configmaps",
	}
)

// NewConfigMap creates a new ConfigMap with the given name and namespace.
func NewConfigMap(name, namespace string) *ConfigMap {
	return &ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Data: make(map[string]string),
	}
}

// IsConfigMapNamespaceScoped returns true as ConfigMap is a
// namespace-scoped resource.
func IsConfigMapNamespaceScoped() bool {
	return true
}

// ConfigMapDescriptor returns the schema table entry for ConfigMap.
// ConfigMap has no status block and therefore no phase concept.
func ConfigMapDescriptor() registry.TypeDescriptor {
	return registry.TypeDescriptor{
		Name:       "V1ConfigMap",
		GVK:        ConfigMapGVK,
		Resource:   ConfigMapGVR.Resource,
		Namespaced: true,
		New:        func() runtime.Object { return &ConfigMap{} },
		Properties: []registry.Property{
			{Name: "apiVersion", Kind: registry.Scalar, Mutable: true},
			{Name: "kind", Kind: registry.Scalar, Mutable: true},
			{Name: "metadata", Kind: registry.Object, Ref: "V1ObjectMeta", Mutable: true},
			{Name: "data", Kind: registry.Mapping, Mutable: true},
			{Name: "binaryData", Kind: registry.Mapping, Mutable: true},
			{Name: "immutable", Kind: registry.Scalar, Mutable: true},
		},
	}
}
