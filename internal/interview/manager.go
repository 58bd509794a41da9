package interview

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager owns the live sessions, keyed by session ID. Steps for a single
// session are strictly sequential, but separate sessions may be created and
// looked up concurrently, hence the lock.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers and returns a fresh session with a generated ID.
func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s

	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return s, nil
}

// Reset restores the identified session to its greeting state.
func (m *Manager) Reset(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.Reset()
	return nil
}

// Remove drops the session. Removing an unknown ID is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
