package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simclinic/virtual-patient/internal/domain"
)

// SessionStore keeps sessions in a process-wide map. A single in-flight turn
// per session id is assumed; the mutex protects the map itself, not
// read-modify-write cycles on one session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
	ttl      time.Duration
}

// NewSessionStore creates an in-memory session store. A non-zero ttl bounds
// session lifetime; expired entries are dropped lazily on Get, so no
// background sweeper runs.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*domain.Session),
		ttl:      ttl,
	}
}

// Create registers a fresh empty session of the given kind
func (s *SessionStore) Create(ctx context.Context, kind domain.SessionKind) (*domain.Session, error) {
	session := domain.NewSession(kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session

	return session, nil
}

// Get fetches a session by id, returning domain.ErrSessionNotFound for
// unknown or expired ids
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if s.ttl > 0 && time.Since(session.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// Save replaces the stored state for the session's id
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Delete discards a session; unknown ids are a no-op
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
