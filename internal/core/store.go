package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps sessions between requests.
//
// Implementations hand out copies: mutating a loaded *Session has no effect
// until it is passed to Save, and Update applies its function atomically with
// respect to other Updates of the same id.
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a process-local SessionStore.
// Idle sessions are dropped lazily on access and in bulk by Sweep.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

// NewMemoryStore creates a store that expires sessions idle longer than idleTimeout.
func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Load returns a copy of the session and marks it as seen.
func (m *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.getLocked(id)
	if err != nil {
		return nil, err
	}
	s.LastSeen = m.now()
	return s.Clone(), nil
}

// Save stores a copy of s, replacing any previous version.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := s.Clone()
	c.LastSeen = m.now()
	m.sessions[c.ID] = c
	return nil
}

// Update runs fn on a copy of the session and stores the result if fn succeeds.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.getLocked(id)
	if err != nil {
		return nil, err
	}

	c := s.Clone()
	if err := fn(c); err != nil {
		return nil, err
	}
	c.LastSeen = m.now()
	m.sessions[id] = c
	return c.Clone(), nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep removes every idle session and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen) > m.idleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, idle ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// getLocked returns the stored session; m.mu must be held.
func (m *MemoryStore) getLocked(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().Sub(s.LastSeen) > m.idleTimeout {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}
