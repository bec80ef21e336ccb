// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the configured backends by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register adds a backend to the registry.
// It returns an error if a backend with the same name is already registered.
func (r *Registry) Register(b Backend) error {
	if b == nil {
		return fmt.Errorf("cannot register nil backend")
	}

	name := b.Name()
	if name == "" {
		return fmt.Errorf("backend name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend %q is already registered", name)
	}

	r.backends[name] = b
	return nil
}

// MustRegister adds a backend to the registry, panicking on error.
func (r *Registry) MustRegister(b Backend) {
	if err := r.Register(b); err != nil {
		panic(fmt.Sprintf("failed to register backend: %v", err))
	}
}

// Get returns a backend by name, or nil if not found.
func (r *Registry) Get(name string) Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.backends[name]
}

// Select returns the named backends in the given order.
func (r *Registry) Select(names []string) ([]Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Backend, 0, len(names))
	for _, name := range names {
		b, ok := r.backends[name]
		if !ok {
			return nil, fmt.Errorf("unknown backend %q (available: %v)", name, r.list())
		}
		out = append(out, b)
	}
	return out, nil
}

// List returns a sorted list of registered backend names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list()
}

func (r *Registry) list() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
