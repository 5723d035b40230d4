package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"salonbot/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptySessionID  = errors.New("session id is empty")
)

// Store persists dialogue sessions. Implementations need not serialize
// access per session; Service does that.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Save(ctx context.Context, s *models.BookingSession) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory. Sessions live until deleted
// or swept.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.BookingSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.BookingSession)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *models.BookingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.SessionID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

// Sweep removes sessions not updated within idle and returns how many were removed.
func (m *MemoryStore) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
