package sim

import (
	"context"
	"testing"

	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEvaluatorService_Evaluate(t *testing.T) {
	ctx := context.Background()
	history := []string{"I've been having headaches for about a week."}

	t.Run("parses a structured verdict", func(t *testing.T) {
		stub := &stubProvider{replies: []string{
			`{"verdict": "RELEVANT", "reason": "Explores the presented complaint."}`,
		}}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		got := svc.Evaluate(ctx, "How severe are the headaches?", history)

		assert.Equal(t, domain.VerdictRelevant, got.Verdict)
		assert.Equal(t, "Explores the presented complaint.", got.Reason)
	})

	t.Run("parses a fenced verdict with suggestion", func(t *testing.T) {
		stub := &stubProvider{replies: []string{
			"```json\n{\"verdict\": \"repetitive\", \"reason\": \"Already answered.\", \"suggestion\": \"Ask about triggers.\"}\n```",
		}}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		got := svc.Evaluate(ctx, "How long have you had them?", history)

		assert.Equal(t, domain.VerdictRepetitive, got.Verdict)
		assert.Equal(t, "Ask about triggers.", got.Suggestion)
	})

	t.Run("malformed model output degrades to WARN", func(t *testing.T) {
		stub := &stubProvider{replies: []string{"I think this question is fine."}}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		got := svc.Evaluate(ctx, "Any allergies?", history)

		assert.Equal(t, domain.VerdictWarn, got.Verdict)
		assert.Equal(t, "invalid JSON from model", got.Reason)
	})

	t.Run("out-of-enum verdict normalizes to WARN", func(t *testing.T) {
		stub := &stubProvider{replies: []string{
			`{"verdict": "GREAT QUESTION", "reason": "n/a"}`,
		}}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		got := svc.Evaluate(ctx, "Any allergies?", history)

		assert.Equal(t, domain.VerdictWarn, got.Verdict)
	})

	t.Run("transport failure maps to ERROR", func(t *testing.T) {
		stub := &stubProvider{fail: true}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		got := svc.Evaluate(ctx, "Any allergies?", history)

		assert.Equal(t, domain.VerdictError, got.Verdict)
		assert.NotEmpty(t, got.Reason)
	})

	t.Run("embeds history and question in the prompt", func(t *testing.T) {
		stub := &stubProvider{replies: []string{`{"verdict": "RELEVANT", "reason": "ok"}`}}
		svc := NewEvaluatorService(newStubRouter(stub), "", "")

		svc.Evaluate(ctx, "Any allergies?", history)

		prompt := stub.lastRequest.Messages[0].Content
		assert.Contains(t, prompt, "Any allergies?")
		assert.Contains(t, prompt, history[0])
	})
}
