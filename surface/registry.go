// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"
)

// BackendFactory creates a backend instance.
type BackendFactory func() (Backend, error)

// RegistryEntry represents a registered backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Window backends use 100, the headless image backend 10.
	Priority int

	// Factory creates backend instances.
	Factory BackendFactory

	// Available reports if the backend can run on this system.
	Available func() bool
}

var globalRegistry = NewRegistry()

// Registry manages named backends. Host packages register themselves from
// init so binaries select backends by name:
//
//	func init() {
//	    surface.Register("glfw", 100, newBackend, glfwAvailable)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a backend to the global registry. A nil available means
// always available. Registering an existing name replaces it.
func Register(name string, priority int, factory BackendFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// Backends returns the available backend names, highest priority first.
func Backends() []string {
	return globalRegistry.Available()
}

// NewBackend creates the named backend from the global registry.
func NewBackend(name string) (Backend, error) {
	return globalRegistry.NewBackend(name)
}

// Default creates the highest-priority available backend.
func Default() (Backend, error) {
	return globalRegistry.Default()
}

// Register adds a backend to r.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns available names sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	c := *e
	return &c, true
}

// NewBackend creates the named backend.
func (r *Registry) NewBackend(name string) (Backend, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return e.Factory()
}

// Default tries each available backend in priority order and returns the
// first that constructs.
func (r *Registry) Default() (Backend, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var lastErr error
	for _, name := range names {
		b, err := r.NewBackend(name)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// sortedNames must be called with the lock held. Equal priorities sort by
// name so the order is stable.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

func init() {
	Register("image", 10, func() (Backend, error) {
		return NewImageBackend(nil), nil
	}, nil)
}
