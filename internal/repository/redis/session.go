package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/simclinic/virtual-patient/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions as JSON blobs in Redis. Entries carry the
// configured TTL; Redis handles expiry, so stale sessions surface as
// domain.ErrSessionNotFound just like deleted ones.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id.String())
}

// Create registers a fresh empty session of the given kind
func (s *SessionStore) Create(ctx context.Context, kind domain.SessionKind) (*domain.Session, error) {
	session := domain.NewSession(kind)
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get fetches a session by id, returning domain.ErrSessionNotFound for
// unknown or expired ids
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	data, err := s.client.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Save replaces the stored state for the session's id
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.rdb.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete discards a session; unknown ids are a no-op
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.rdb.Del(ctx, sessionKey(id)).Err()
}
