package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/simclinic/virtual-patient/internal/domain"
)

// resolveSession loads the session named by rawID, or creates a fresh one
// when the id is absent, malformed, or unknown. A stale id is never an error
// for the caller; it just means a new consultation starts.
func resolveSession(ctx context.Context, store domain.SessionStore, kind domain.SessionKind, rawID string) (*domain.Session, error) {
	if rawID != "" {
		if id, err := uuid.Parse(rawID); err == nil {
			session, err := store.Get(ctx, id)
			if err == nil {
				return session, nil
			}
			if !errors.Is(err, domain.ErrSessionNotFound) {
				return nil, err
			}
		}
	}
	return store.Create(ctx, kind)
}
