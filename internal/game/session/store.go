// Package session provides caller-side orchestration around combat
// sessions: a concurrency-safe store keyed by session id, and the
// unattended auto-fight supervisor.
package session

import (
	"sync"

	"github.com/ShadyDingo/idleduelist/internal/game/combat"
)

// Store holds combat sessions keyed by session id. Implementations
// must be safe for concurrent use. The sessions themselves are not
// internally synchronized: distinct sessions may be advanced in
// parallel, but every advance for one session must come from its
// single owner.
type Store interface {
	// Get returns the session for the given id.
	Get(id string) (*combat.Session, bool)
	// Put registers s, replacing any session with the same id.
	Put(s *combat.Session)
	// Delete removes the session for the given id. Deleting an unknown
	// id is a no-op.
	Delete(id string)
	// List returns the sessions for which keep returns true, in
	// unspecified order. A nil keep returns every session.
	List(keep func(*combat.Session) bool) []*combat.Session
	// Len returns the number of stored sessions.
	Len() int
}

// MemoryStore is an in-memory Store backed by a map.
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*combat.Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*combat.Session),
	}
}

// Get returns the session for the given id.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *MemoryStore) Get(id string) (*combat.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Put registers s under its id, replacing any existing entry.
//
// Precondition: s must be non-nil.
func (m *MemoryStore) Put(s *combat.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

// Delete removes the session for the given id if present.
func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// List returns the sessions matching keep, or all sessions when keep
// is nil.
//
// Postcondition: Returns a freshly allocated slice (may be empty).
func (m *MemoryStore) List(keep func(*combat.Session) bool) []*combat.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*combat.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
