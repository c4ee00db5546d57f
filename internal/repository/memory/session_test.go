package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		store := NewSessionStore(0)

		created, err := store.Create(ctx, domain.KindPatientChat)
		require.NoError(t, err)
		assert.False(t, created.ConversationEnd)
		assert.False(t, created.ClarificationUsed)
		assert.Empty(t, created.RevealedSymptoms)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, domain.KindPatientChat, got.Kind)
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := NewSessionStore(0)

		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("save replaces state", func(t *testing.T) {
		store := NewSessionStore(0)

		session, err := store.Create(ctx, domain.KindTreatment)
		require.NoError(t, err)

		session.Append(domain.Doctor("Take this twice daily."))
		session.ClarificationUsed = true
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, got.ClarificationUsed)
		assert.Len(t, got.Messages, 1)
	})

	t.Run("delete then get", func(t *testing.T) {
		store := NewSessionStore(0)

		session, err := store.Create(ctx, domain.KindTreatment)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, session.ID))
		_, err = store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		store := NewSessionStore(0)
		assert.NoError(t, store.Delete(ctx, uuid.New()))
	})

	t.Run("expired session reads as not found", func(t *testing.T) {
		store := NewSessionStore(time.Millisecond)

		session, err := store.Create(ctx, domain.KindPatientChat)
		require.NoError(t, err)
		session.CreatedAt = session.CreatedAt.Add(-time.Second)
		require.NoError(t, store.Save(ctx, session))

		_, err = store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
