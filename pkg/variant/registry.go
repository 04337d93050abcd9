package variant

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores compiled variants by name.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// Register adds a variant by name. Duplicate names return an error.
func (r *Registry) Register(v Variant) error {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return fmt.Errorf("variant: name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[name]; exists {
		return fmt.Errorf("variant: %q already registered", name)
	}
	r.variants[name] = v
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(v Variant) {
	if err := r.Register(v); err != nil {
		panic(err)
	}
}

// Get retrieves a variant by name. Missing names wrap ErrUnknownVariant.
func (r *Registry) Get(name string) (Variant, error) {
	if r == nil {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// List returns the sorted variant names.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every variant ordered by name.
func (r *Registry) All() []Variant {
	names := r.List()
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		if v, err := r.Get(name); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether a variant is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.variants[name]
	return ok
}
