package panel

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Deps builds the collaborators of each user's panel.
type Deps struct {
	Stores    func(userID uuid.UUID) Store
	Notifiers func(userID uuid.UUID) Notifier
	Session   Session
	Logger    zerolog.Logger
}

// Registry keeps one panel per signed-in provider.
type Registry struct {
	deps Deps

	mu     sync.Mutex
	panels map[uuid.UUID]*Panel
}

// NewRegistry creates an empty registry.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, panels: make(map[uuid.UUID]*Panel)}
}

// Get returns the user's panel, creating and mounting it on first use.
func (r *Registry) Get(ctx context.Context, userID uuid.UUID) *Panel {
	r.mu.Lock()
	p, ok := r.panels[userID]
	if !ok {
		log := r.deps.Logger.With().Str("user_id", userID.String()).Logger()
		p = New(r.deps.Stores(userID), r.deps.Session, r.deps.Notifiers(userID), log)
		r.panels[userID] = p
	}
	r.mu.Unlock()

	p.Mount(ctx)
	return p
}

// Drop forgets the user's panel, e.g. on logout.
func (r *Registry) Drop(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.panels, userID)
	r.mu.Unlock()
}

// Len reports how many panels are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panels)
}
