package orchestrator

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one Session per browser session ID. Sessions are
// process-local and ephemeral; restarting the gateway forgets them all.
type Manager struct {
	engine   Engine
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(engine Engine) *Manager {
	return &Manager{engine: engine, sessions: make(map[string]*Session)}
}

// Resolve returns the session for id, creating a fresh one (with a new uuid)
// when id is empty or unknown. The returned id is always valid.
func (m *Manager) Resolve(id string) (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return id, s
		}
	}
	id = uuid.NewString()
	s := NewSession(m.engine)
	m.sessions[id] = s
	return id, s
}
