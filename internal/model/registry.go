package model

import (
	"sort"
	"sync"
)

// Registry stores the acquisition state of every artifact the manager touched.
type Registry struct {
	artifacts map[string]*ArtifactInstance
	mu        sync.RWMutex
}

// NewRegistry creates a new artifact registry.
func NewRegistry() *Registry {
	return &Registry{
		artifacts: make(map[string]*ArtifactInstance),
	}
}

// Set adds an artifact instance to the registry, replacing any previous one.
func (r *Registry) Set(instance *ArtifactInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artifacts[instance.Name] = instance
}

// Update applies fn to the named instance under the registry lock.
func (r *Registry) Update(name string, fn func(*ArtifactInstance)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instance, ok := r.artifacts[name]
	if !ok {
		return ErrNotFound
	}

	fn(instance)
	return nil
}

// Get returns a snapshot of the named artifact instance.
func (r *Registry) Get(name string) (ArtifactInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.artifacts[name]
	if !ok {
		return ArtifactInstance{}, false
	}

	return instance.clone(), true
}

// List returns snapshots of all artifact instances sorted by name.
func (r *Registry) List() []ArtifactInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]ArtifactInstance, 0, len(r.artifacts))
	for _, instance := range r.artifacts {
		instances = append(instances, instance.clone())
	}
	sort.Slice(instances, func(i, j int) bool { return instances[i].Name < instances[j].Name })

	return instances
}
