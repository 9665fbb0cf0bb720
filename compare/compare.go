// Package compare implements recursive, order-insensitive structural
// equality over the unstructured form of model objects. Collections are
// treated as semantically unordered: the backing server may reorder list
// elements on a round trip, so ordered comparison would report false
// mismatches.
package compare

import (
	"reflect"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Objects reports whether two model objects are semantically equal. Both
// nil is equal; exactly one nil is not; objects of different concrete
// types are never equal. Otherwise both are converted to their
// field-to-value mapping form and compared with Mappings.
func Objects(a, b runtime.Object) (bool, error) {
	if a == nil && b == nil {
		return true, nil
	}
	if a == nil || b == nil {
		return false, nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false, nil
	}

	ma, err := runtime.DefaultUnstructuredConverter.ToUnstructured(a)
	if err != nil {
		return false, err
	}
	mb, err := runtime.DefaultUnstructuredConverter.ToUnstructured(b)
	if err != nil {
		return false, err
	}
	return Mappings(ma, mb), nil
}

// Mappings reports whether two field-to-value mappings are equal. Every
// key of ma must be present in mb; a value that is nil on one side must be
// nil on the other; nested values dispatch on their kind. The first
// mismatch wins.
func Mappings(ma, mb map[string]interface{}) bool {
	if len(ma) == 0 && len(mb) == 0 {
		return true
	}
	if len(ma) == 0 || len(mb) == 0 {
		return false
	}

	for key, va := range ma {
		vb, exists := mb[key]
		if !exists {
			return false
		}
		if va == nil && vb == nil {
			continue
		}
		if va == nil || vb == nil {
			return false
		}

		switch typedA := va.(type) {
		case []interface{}:
			typedB, ok := vb.([]interface{})
			if !ok || !Collections(typedA, typedB) {
				return false
			}
		case map[string]interface{}:
			typedB, ok := vb.(map[string]interface{})
			if !ok || !Mappings(typedA, typedB) {
				return false
			}
		default:
			if va != vb {
				return false
			}
		}
	}
	return true
}

// Collections reports whether two collections are equal under the
// unordered containment rule. The element kind of the first element of la
// selects the comparison:
//
//   - mapping elements: every element of la must have an element of lb
//     with identical field/value pairs. This is a one-directional
//     containment check; extra elements present only in lb, and
//     duplicate-count mismatches, are not detected. That relaxation is
//     intentional and documented.
//   - collection elements: the same containment check applied recursively.
//   - scalar elements: compared as unordered sets, duplicates collapse.
//
// Lists are assumed homogeneous, as the unstructured converter produces
// them; a list mixing scalar and composite elements is unsupported.
func Collections(la, lb []interface{}) bool {
	if len(la) == 0 && len(lb) == 0 {
		return true
	}
	if len(la) == 0 || len(lb) == 0 {
		return false
	}

	switch la[0].(type) {
	case map[string]interface{}:
		for _, elemA := range la {
			found := false
			for _, elemB := range lb {
				if reflect.DeepEqual(elemA, elemB) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true

	case []interface{}:
		for _, elemA := range la {
			nestedA, ok := elemA.([]interface{})
			if !ok {
				return false
			}
			found := false
			for _, elemB := range lb {
				if nestedB, ok := elemB.([]interface{}); ok && Collections(nestedA, nestedB) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true

	default:
		return scalarSet(la).Equal(scalarSet(lb))
	}
}

func scalarSet(l []interface{}) sets.Set[interface{}] {
	s := sets.New[interface{}]()
	for _, v := range l {
		s.Insert(v)
	}
	return s
}
