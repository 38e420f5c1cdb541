package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownRenderer is returned by Get for names nobody registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned by Register when the name is taken.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Registry maps renderer names to renderers. Names are matched without
// regard to case or surrounding space.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	key := registryKey(renderer.Name())
	if key == "" {
		return fmt.Errorf("render: %T has no name", renderer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, key)
	}
	r.byName[key] = renderer
	return nil
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[registryKey(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownRenderer, name, strings.Join(r.List(), ", "))
	}
	return renderer, nil
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[registryKey(name)]
	return ok
}

// List returns the registered names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
