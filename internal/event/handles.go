package event

import (
	"sync"

	"github.com/google/uuid"
)

// handleRegistry maps the opaque user data given to the runtime back to
// listener instances.
type handleRegistry struct {
	mu sync.RWMutex
	m  map[uuid.UUID]any
}

var handles = &handleRegistry{m: make(map[uuid.UUID]any)}

func (r *handleRegistry) acquire(v any) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.m[id] = v
	return id
}

func (r *handleRegistry) release(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.m, id)
}

func (r *handleRegistry) lookup(id uuid.UUID) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.m[id]
	return v, ok
}

func (r *handleRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.m)
}
