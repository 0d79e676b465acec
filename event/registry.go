package event

import (
	"fmt"
	"sync"

	"github.com/c360/iecbridge/errors"
)

// Subscriber is a named binding between a subscriber id and a handler.
type Subscriber struct {
	ID       string
	Category Category
	Handler  any
}

// Registry maps subscriber ids to at most one live handler each. It is
// safe for concurrent use; together with the bridge's execution lock it
// is the only state intentionally shared between the engine's worker
// goroutines and application goroutines.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]Subscriber)}
}

// Register binds a handler to an id. Registration on an occupied id is
// rejected with ErrDuplicateSubscriber rather than silently replacing the
// live handler; the existing handler remains active. The handler must
// implement the interface its category dispatches to.
func (r *Registry) Register(id string, category Category, handler any) error {
	if id == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Registry", "Register", "subscriber id validation")
	}
	if handler == nil {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Registry", "Register", "handler validation")
	}
	if !category.Valid() {
		msg := fmt.Errorf("unknown category %q", category)
		return errors.WrapInvalid(msg, "Registry", "Register", "category validation")
	}
	if !handlerMatches(category, handler) {
		msg := fmt.Errorf("handler %T does not implement the %q handler interface", handler, category)
		return errors.WrapInvalid(msg, "Registry", "Register", "handler type validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subs[id]; exists {
		msg := fmt.Errorf("subscriber %q: %w", id, errors.ErrDuplicateSubscriber)
		return errors.WrapInvalid(msg, "Registry", "Register", "duplicate subscriber check")
	}

	r.subs[id] = Subscriber{ID: id, Category: category, Handler: handler}
	return nil
}

// Unregister removes the subscriber if present; no-op otherwise.
func (r *Registry) Unregister(id string) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// Lookup returns the subscriber bound to id. Pure read.
func (r *Registry) Lookup(id string) (Subscriber, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subs[id]
	return sub, ok
}

// IDs returns the currently registered subscriber ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	return ids
}

// Clear removes every subscriber. Used by facade teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[string]Subscriber)
}
