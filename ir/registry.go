package ir

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry manages the kinds of one document. It is built once per
// pipeline run; processors extend kinds through it rather than mutating
// shared globals.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Define registers a kind, optionally inheriting base's schema.
func (r *Registry) Define(name string, base *Kind) (*Kind, error) {
	if name == "" {
		return nil, fmt.Errorf("kind must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDupKind, name)
	}
	k := &Kind{name: name, base: base}
	r.kinds[name] = k
	return k, nil
}

// Lookup returns the kind registered under name, or nil.
func (r *Registry) Lookup(name string) *Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kinds[name]
}

// Contains reports whether k is a kind this registry defined.
func (r *Registry) Contains(k *Kind) bool {
	if k == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kinds[k.name] == k
}

// All returns the registered kinds sorted by name.
func (r *Registry) All() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		result = append(result, k)
	}
	slices.SortFunc(result, func(a, b *Kind) int {
		return strings.Compare(a.name, b.name)
	})
	return result
}
