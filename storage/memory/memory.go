// Package memory provides an in-memory object store and an API group set
// built on top of it. It is the reference backend: tests and embedded
// callers get full lifecycle semantics without a live cluster endpoint.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
)

// Store is a thread-safe in-memory object store keyed by
// resource/namespace/name. Objects are deep-copied on the way in and out
// so callers can never mutate stored state directly. Failures surface as
// apimachinery status errors carrying HTTP-like codes.
type Store struct {
	mu sync.RWMutex

	// objects maps storage keys to the stored objects
	objects map[string]runtime.Object

	// resourceVersion is a monotonic counter stamped on every write
	resourceVersion uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		objects: make(map[string]runtime.Object),
	}
}

// Get returns a copy of the object stored under the key, or a NotFound
// status error.
func (s *Store) Get(ctx context.Context, gr schema.GroupResource, resource, namespace, name string) (runtime.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, exists := s.objects[buildKey(resource, namespace, name)]
	if !exists {
		return nil, apierrors.NewNotFound(gr, name)
	}
	return obj.DeepCopyObject(), nil
}

// Create stores a new object, stamping server-assigned metadata. An
// existing object under the same key yields an AlreadyExists status error.
func (s *Store) Create(ctx context.Context, gr schema.GroupResource, resource, namespace string, obj runtime.Object) (runtime.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accessor, err := meta.Accessor(obj)
	if err != nil {
		return nil, err
	}
	name := accessor.GetName()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := buildKey(resource, namespace, name)
	if _, exists := s.objects[key]; exists {
		return nil, apierrors.NewAlreadyExists(gr, name)
	}

	stored := obj.DeepCopyObject()
	if err := s.stampMetadata(stored); err != nil {
		return nil, err
	}

	s.objects[key] = stored
	return stored.DeepCopyObject(), nil
}

// Patch merges the supplied object's fields onto the stored one and
// returns the result. A missing object yields a NotFound status error.
func (s *Store) Patch(ctx context.Context, gr schema.GroupResource, resource, namespace, name string, obj runtime.Object) (runtime.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := buildKey(resource, namespace, name)
	existing, exists := s.objects[key]
	if !exists {
		return nil, apierrors.NewNotFound(gr, name)
	}

	existingU, err := runtime.DefaultUnstructuredConverter.ToUnstructured(existing)
	if err != nil {
		return nil, err
	}
	patchU, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}

	merged := mergeMaps(existingU, patchU)

	patched := existing.DeepCopyObject()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(merged, patched); err != nil {
		return nil, err
	}

	accessor, err := meta.Accessor(patched)
	if err != nil {
		return nil, err
	}
	s.resourceVersion++
	accessor.SetResourceVersion(strconv.FormatUint(s.resourceVersion, 10))

	s.objects[key] = patched
	return patched.DeepCopyObject(), nil
}

// Delete removes the object stored under the key. A missing object yields
// a NotFound status error.
func (s *Store) Delete(ctx context.Context, gr schema.GroupResource, resource, namespace, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := buildKey(resource, namespace, name)
	if _, exists := s.objects[key]; !exists {
		return apierrors.NewNotFound(gr, name)
	}
	delete(s.objects, key)
	return nil
}

// stampMetadata fills the server-assigned metadata of a newly created
// object. Callers hold the write lock.
func (s *Store) stampMetadata(obj runtime.Object) error {
	accessor, err := meta.Accessor(obj)
	if err != nil {
		return err
	}

	s.resourceVersion++
	accessor.SetResourceVersion(strconv.FormatUint(s.resourceVersion, 10))

	if accessor.GetUID() == "" {
		accessor.SetUID(types.UID(fmt.Sprintf("%s-%d", accessor.GetName(), s.resourceVersion)))
	}
	if accessor.GetCreationTimestamp().Time.IsZero() {
		now := metav1.Now()
		accessor.SetCreationTimestamp(now)
	}
	return nil
}

func buildKey(resource, namespace, name string) string {
	if namespace != "" {
		return "/" + resource + "/" + namespace + "/" + name
	}
	return "/" + resource + "/" + name
}

// mergeMaps overlays patch onto base, merging nested mappings and
// replacing everything else, JSON-merge style.
func mergeMaps(base, patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if v == nil {
			continue
		}
		if patchMap, ok := v.(map[string]interface{}); ok {
			if baseMap, ok := out[k].(map[string]interface{}); ok {
				out[k] = mergeMaps(baseMap, patchMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}
