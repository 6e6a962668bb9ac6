package game

import (
	"fmt"
	"sort"
	"sync"

	"solitaire-go/internal/game/solitaire"
	"solitaire-go/internal/models"
)

// Factory builds a freshly dealt game.
type Factory func(opts solitaire.Options) (Game, error)

// Registry allows registering game engine factories by type.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// NewDefaultRegistry has every game this server can deal.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(solitaire.GameType, func(opts solitaire.Options) (Game, error) {
		g, err := solitaire.New(opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	return r
}

func (r *Registry) Register(gameType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[gameType] = factory
}

func (r *Registry) New(gameType string, opts solitaire.Options) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[gameType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownGameType, gameType)
	}
	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRules, err)
	}
	return g, nil
}

func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
