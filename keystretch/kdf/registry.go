package kdf

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry maps engine UUIDs to engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[uuid.UUID]Engine
}

// NewRegistry creates a registry holding engines.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{engines: map[uuid.UUID]Engine{}}
	for _, e := range engines {
		r.Register(e)
	}
	return r
}

// Register adds e, replacing any engine with the same UUID.
func (r *Registry) Register(e Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[e.UUID()] = e
}

// Lookup returns the engine for id.
func (r *Registry) Lookup(id uuid.UUID) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, id)
	}
	return e, nil
}

// LookupName returns the engine whose name matches, ignoring case.
func (r *Registry) LookupName(name string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.engines {
		if strings.EqualFold(e.Name(), strings.TrimSpace(name)) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Engines returns the registered engines sorted by name.
func (r *Registry) Engines() []Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Engine, 0, len(r.engines))
	for _, e := range r.engines {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Derive runs the engine named by p.UUID.
func (r *Registry) Derive(msg []byte, p *Parameters) ([]byte, error) {
	if p == nil {
		return nil, ErrNilInput
	}
	e, err := r.Lookup(p.UUID)
	if err != nil {
		return nil, err
	}
	return e.Transform(msg, p)
}

var defaultRegistry = NewRegistry(NewAESEngine(), NewArgon2Engine())

// Register adds e to the default registry.
func Register(e Engine) { defaultRegistry.Register(e) }

// Lookup finds an engine in the default registry.
func Lookup(id uuid.UUID) (Engine, error) { return defaultRegistry.Lookup(id) }

// LookupName finds an engine in the default registry by name.
func LookupName(name string) (Engine, error) { return defaultRegistry.LookupName(name) }

// Engines lists the engines of the default registry.
func Engines() []Engine { return defaultRegistry.Engines() }

// Derive runs p's engine from the default registry.
func Derive(msg []byte, p *Parameters) ([]byte, error) { return defaultRegistry.Derive(msg, p) }
