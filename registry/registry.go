// Package registry implements the schema table that maps (apiVersion,
// kind) pairs to static model type descriptors. Descriptors carry the
// property tables (field name, declared kind, mutability) that the
// sanitizer and comparator walk, replacing runtime type introspection with
// an explicit table populated at process startup.
package registry

import (
	"fmt"
	"sync"

	oserrors "github.com/chouseknecht/openshift-restclient-go/errors"
)

// typeRegistry is the default implementation of the Registry interface.
type typeRegistry struct {
	mu sync.RWMutex

	// models maps canonical model names to their descriptors
	models map[string]*TypeDescriptor

	// properties caches DescribeProperties results per model name
	properties map[string]map[string]Property

	config config
}

// New creates an empty type registry with optional configuration.
func New(opts ...Option) Registry {
	cfg := config{
		DefaultAPIVersion: BaseAPIVersion,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &typeRegistry{
		models:     make(map[string]*TypeDescriptor),
		properties: make(map[string]map[string]Property),
		config:     cfg,
	}
}

// Register adds a type descriptor to the table.
func (r *typeRegistry) Register(desc TypeDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("type descriptor must specify a model name")
	}
	if desc.New != nil && desc.GVK.Kind == "" {
		return fmt.Errorf("constructible type %s must specify a GroupVersionKind", desc.Name)
	}
	if desc.New != nil && desc.Resource == "" {
		return fmt.Errorf("constructible type %s must specify a resource name", desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[desc.Name]; exists && !r.config.AllowOverwrite {
		return fmt.Errorf("model %s is already registered", desc.Name)
	}

	d := desc
	r.models[desc.Name] = &d
	delete(r.properties, desc.Name)

	return nil
}

// Resolve canonicalizes the kind and apiVersion into a model name and
// returns its descriptor.
func (r *typeRegistry) Resolve(apiVersion, kind string) (*TypeDescriptor, error) {
	if apiVersion == "" {
		apiVersion = r.config.DefaultAPIVersion
	}
	name := ModelName(apiVersion, kind)

	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.models[name]
	if !exists {
		return nil, &oserrors.UnknownModelError{
			APIVersion: apiVersion,
			Kind:       kind,
			ModelName:  name,
		}
	}
	return desc, nil
}

// Descriptor returns the descriptor registered under the given model name.
func (r *typeRegistry) Descriptor(modelName string) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.models[modelName]
	return desc, exists
}

// DescribeProperties returns the property table of the descriptor keyed by
// field name. Nested type references are validated against the table; a
// dangling reference yields *errors.InternalSchemaError.
func (r *typeRegistry) DescribeProperties(desc *TypeDescriptor) (map[string]Property, error) {
	r.mu.RLock()
	if cached, exists := r.properties[desc.Name]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check after acquiring the write lock.
	if cached, exists := r.properties[desc.Name]; exists {
		return cached, nil
	}

	result := make(map[string]Property, len(desc.Properties))
	for _, prop := range desc.Properties {
		if prop.Kind == Object {
			if _, exists := r.models[prop.Ref]; !exists {
				return nil, &oserrors.InternalSchemaError{
					TypeName: desc.Name,
					Property: prop.Name,
					Ref:      prop.Ref,
				}
			}
		}
		result[prop.Name] = prop
	}

	r.properties[desc.Name] = result
	return result, nil
}

// Models returns the canonical names of all registered types.
func (r *typeRegistry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// StatusReportsPhase reports whether the type's status block declares a
// lifecycle phase property. Kinds without a phase concept are considered
// ready as soon as they exist.
func StatusReportsPhase(s Schema, desc *TypeDescriptor) bool {
	for _, prop := range desc.Properties {
		if prop.Name != "status" || prop.Kind != Object {
			continue
		}
		status, exists := s.Descriptor(prop.Ref)
		if !exists {
			return false
		}
		for _, sp := range status.Properties {
			if sp.Name == "phase" {
				return true
			}
		}
	}
	return false
}

// Ensure the implementation satisfies its interface.
var _ Registry = (*typeRegistry)(nil)
