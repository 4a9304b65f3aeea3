package backend

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

// DecodeFunc builds an in-memory artifact from a serialized document.
type DecodeFunc func(data []byte) (any, error)

// Registry maps artifact kinds to their decoders. It deserializes cached
// artifact files by dispatching on the document's kind field.
type Registry struct {
	decoders map[string]DecodeFunc
	mu       sync.RWMutex
}

// NewRegistry creates a new decoder registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]DecodeFunc),
	}
}

// Register adds a decoder for kind.
func (r *Registry) Register(kind string, decode DecodeFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decoders[kind]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, kind)
	}

	r.decoders[kind] = decode
	return nil
}

// Get retrieves the decoder for kind.
func (r *Registry) Get(kind string) (DecodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decode, ok := r.decoders[kind]
	return decode, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.decoders))
	for kind := range r.decoders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	return kinds
}

// Deserialize reads the artifact at path and decodes it with the decoder
// registered for its kind.
func (r *Registry) Deserialize(name, path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}

	var header struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, name, err)
	}

	if header.Kind == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingKind, name)
	}

	decode, ok := r.Get(header.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s (artifact %s)", ErrNotFound, header.Kind, name)
	}

	obj, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s of kind %s: %w", name, header.Kind, err)
	}

	return obj, nil
}
