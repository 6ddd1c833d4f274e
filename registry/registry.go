package registry

import (
	"go.uber.org/zap"

	"github.com/wippyai/s7layout/types"
)

// Registry maps type names to descriptors
type Registry struct {
	types map[string]types.Type
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		types: make(map[string]types.Type),
	}
}

// NewDefault creates a registry seeded with the primitive table.
func NewDefault() *Registry {
	r := New()
	r.SeedDefaults()
	return r
}

// SeedDefaults registers every built-in primitive.
func (r *Registry) SeedDefaults() {
	for _, p := range types.Primitives() {
		r.Register(p.Name(), p)
	}
}

// Register inserts t under name, replacing any previous entry.
func (r *Registry) Register(name string, t types.Type) {
	if prev, ok := r.types[name]; ok {
		Logger().Debug("type redeclared",
			zap.String("name", name),
			zap.Int("previous_size", prev.Size()),
			zap.Int("size", t.Size()))
	} else {
		r.order = append(r.order, name)
	}
	r.types[name] = t
}

// Lookup returns the type registered under the exact name.
func (r *Registry) Lookup(name string) (types.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns registered names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.types)
}
