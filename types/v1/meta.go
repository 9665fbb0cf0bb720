package v1

import (
	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// ObjectMetaDescriptor returns the auxiliary descriptor for the shared
// metadata block carried by every top-level resource. creationTimestamp,
// uid, resourceVersion and generation are server-assigned and therefore
// not mutable.
func ObjectMetaDescriptor() registry.TypeDescriptor {
	return registry.TypeDescriptor{
		Name: "V1ObjectMeta",
		Properties: []registry.Property{
			{Name: "name", Kind: registry.Scalar, Mutable: true},
			{Name: "generateName", Kind: registry.Scalar, Mutable: true},
			{Name: "namespace", Kind: registry.Scalar, Mutable: true},
			{Name: "uid", Kind: registry.Scalar},
			{Name: "resourceVersion", Kind: registry.Scalar},
			{Name: "generation", Kind: registry.Scalar},
			{Name: "creationTimestamp", Kind: registry.Scalar},
			{Name: "deletionTimestamp", Kind: registry.Scalar},
			{Name: "labels", Kind: registry.Mapping, Mutable: true},
			{Name: "annotations", Kind: registry.Mapping, Mutable: true},
			{Name: "ownerReferences", Kind: registry.Collection, Mutable: true},
			{Name: "finalizers", Kind: registry.Collection, Mutable: true},
		},
	}
}
