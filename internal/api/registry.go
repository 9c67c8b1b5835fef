package api

import (
	"sync"

	"github.com/remivoice/remi/internal/session"
)

// managedSession pairs an engine with its lock. Engines are single-threaded;
// the registry serializes HTTP and websocket access to each one.
type managedSession struct {
	mu     sync.Mutex
	engine *session.Engine
}

// Registry tracks live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*managedSession
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*managedSession)}
}

func (r *Registry) Add(e *session.Engine) *managedSession {
	m := &managedSession{engine: e}
	r.mu.Lock()
	r.sessions[e.ID()] = m
	r.mu.Unlock()
	return m
}

func (r *Registry) Get(id string) (*managedSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.sessions[id]
	return m, ok
}

// Remove drops a finished session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
