// Package adapters provides the settings-file adapters and the registry that
// selects one per descriptor kind.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/themetoggle/themetoggle/internal/models"
)

// Adapter reads and rewrites the theme setting of one settings-file format.
type Adapter interface {
	// Kind returns the descriptor kind this adapter handles.
	Kind() models.AdapterKind

	// Apply writes the theme name for mode into the descriptor's settings
	// file and returns the applied name.
	Apply(ctx context.Context, desc models.Descriptor, mode models.ThemeMode) (string, error)

	// Current returns the theme name currently stored in the settings file.
	Current(ctx context.Context, desc models.Descriptor) (string, error)
}

// Registry manages registered adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[models.AdapterKind]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[models.AdapterKind]Adapter),
	}
}

// NewBuiltinRegistry creates a registry holding the JSON and text adapters.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NewJSONAdapter())
	r.MustRegister(NewTextAdapter())
	return r
}

// Register adds an adapter to the registry.
// Returns an error if an adapter for the same kind is already registered.
func (r *Registry) Register(adapter Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := adapter.Kind()
	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("adapter %q already registered", kind)
	}

	r.adapters[kind] = adapter
	return nil
}

// MustRegister adds an adapter to the registry, panicking on error.
func (r *Registry) MustRegister(adapter Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get retrieves an adapter by kind.
// Returns nil if the adapter is not found.
func (r *Registry) Get(kind models.AdapterKind) Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.adapters[kind]
}

// For returns the adapter for a descriptor, or ErrUnknownKind.
func (r *Registry) For(desc models.Descriptor) (Adapter, error) {
	adapter := r.Get(desc.Kind)
	if adapter == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, desc.Kind)
	}
	return adapter, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []models.AdapterKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]models.AdapterKind, 0, len(r.adapters))
	for kind := range r.adapters {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})
	return kinds
}

// DefaultRegistry is the global adapter registry.
var DefaultRegistry = NewBuiltinRegistry()
