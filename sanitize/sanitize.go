// Package sanitize clears server-assigned fields from model objects before
// they are sent back for modification. The walk is guided by the declared
// property tables rather than by inspecting the live values.
package sanitize

import (
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/chouseknecht/openshift-restclient-go/registry"
)

// creationTimestampField is the wire name of the server-assigned creation
// timestamp cleared on every type that carries one.
const creationTimestampField = "creationTimestamp"

// StripServerAssignedFields walks the unstructured form of an object in
// place and unsets fields the server owns. Rules, applied per declared
// property:
//
//   - a field named creationTimestamp is unset regardless of kind;
//   - Collection and Mapping fields are not recursed into, their elements
//     are left as-is;
//   - Scalar fields are untouched;
//   - Object fields with a non-empty value are recursed into using the
//     linked descriptor.
//
// Applying the function twice is a no-op.
func StripServerAssignedFields(u map[string]interface{}, desc *registry.TypeDescriptor, schema registry.Schema) {
	if len(u) == 0 || desc == nil {
		return
	}

	for _, prop := range desc.Properties {
		if prop.Name == creationTimestampField {
			delete(u, prop.Name)
			continue
		}

		switch prop.Kind {
		case registry.Collection, registry.Mapping, registry.Scalar:
			// Never descend into these.
		case registry.Object:
			value, exists := u[prop.Name]
			if !exists || value == nil {
				continue
			}
			nested, ok := value.(map[string]interface{})
			if !ok || len(nested) == 0 {
				continue
			}
			if ref, ok := schema.Descriptor(prop.Ref); ok {
				StripServerAssignedFields(nested, ref, schema)
			}
		}
	}
}

// Object returns a sanitized copy of obj, leaving the original untouched.
func Object(obj runtime.Object, desc *registry.TypeDescriptor, schema registry.Schema) (runtime.Object, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}

	StripServerAssignedFields(u, desc, schema)

	out := desc.New()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(u, out); err != nil {
		return nil, err
	}
	return out, nil
}
