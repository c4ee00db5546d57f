package sim

import (
	"context"
	"testing"

	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreatmentService_Turn(t *testing.T) {
	ctx := context.Background()

	t.Run("acceptance without questions ends the exchange", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"Thank you doctor, I'll take it as prescribed."}}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)

		svc.Turn(ctx, session, "Take 500mg of amoxicillin three times a day for 5 days.")

		assert.True(t, session.ConversationEnd)
		assert.False(t, session.ClarificationUsed)
	})

	t.Run("clarification question keeps the exchange open", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"Should I take it before or after meals?"}}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)

		svc.Turn(ctx, session, "Take this paracetamol twice daily.")

		assert.False(t, session.ConversationEnd)
		assert.True(t, session.ClarificationUsed)
	})

	t.Run("turn after clarification always ends, whatever the reply", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"And what about the dosage, how much exactly?"}}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)
		session.ClarificationUsed = true

		svc.Turn(ctx, session, "After meals is fine.")

		assert.True(t, session.ConversationEnd)
		assert.True(t, session.ClarificationUsed)
	})

	t.Run("uses the accept prompt once clarification is spent", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"Thank you doctor, that's clear now."}}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)
		session.ClarificationUsed = true

		svc.Turn(ctx, session, "Before meals, with water.")

		assert.Contains(t, stub.lastRequest.System, "question has been answered")
		assert.Equal(t, 100, stub.lastRequest.MaxTokens)
	})

	t.Run("generation failure closes the exchange with the fallback reply", func(t *testing.T) {
		stub := &stubProvider{fail: true}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)

		reply := svc.Turn(ctx, session, "Take this cream twice daily.")

		assert.Equal(t, "Thank you doctor, I understand and will follow your advice.", reply)
		assert.True(t, session.ConversationEnd)
		assert.True(t, session.ClarificationUsed)
		require.Len(t, session.Messages, 2)
	})

	t.Run("ended session returns canned reply without calling the model", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"should not be used"}}
		svc := NewTreatmentService(newStubRouter(stub), "", "")
		session := domain.NewSession(domain.KindTreatment)
		session.ConversationEnd = true

		reply := svc.Turn(ctx, session, "One more thing.")

		assert.Equal(t, "[Consultation already completed politely.]", reply)
		assert.Zero(t, stub.calls)
	})
}
