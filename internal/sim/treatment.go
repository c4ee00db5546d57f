package sim

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/llm"
)

const (
	treatmentTemperature = 0.7
	treatmentMaxTokens   = 100
)

// TreatmentService runs the prescription exchange: the patient may ask one
// clarifying question, then accepts and the conversation ends.
type TreatmentService struct {
	router   *llm.Router
	provider string
	model    string
}

// NewTreatmentService creates a new treatment service
func NewTreatmentService(router *llm.Router, provider, model string) *TreatmentService {
	return &TreatmentService{router: router, provider: provider, model: model}
}

// Turn appends the prescription, generates the patient reply, and applies the
// clarification state machine:
//
//   - clarification already used at turn start: the reply always closes the
//     exchange, whatever it contains
//   - reply asks a clarification: ClarificationUsed flips true, exchange stays
//     open for the doctor's answer
//   - reply accepts without questions: exchange closes
//
// A failed generation degrades to a fixed acceptance reply and closes the
// exchange. Turns against an ended session return a canned reply and make no
// generation call.
func (s *TreatmentService) Turn(ctx context.Context, session *domain.Session, prescription string) string {
	if session.ConversationEnd {
		return treatmentClosedReply
	}

	clarified := session.ClarificationUsed
	session.Append(domain.Doctor(prescription))

	system := treatmentClarifyPrompt
	if clarified {
		system = treatmentAcceptPrompt
	}

	reply, generated := s.generate(ctx, system, session.Messages)
	if !generated {
		session.ClarificationUsed = true
		session.ConversationEnd = true
		session.Append(domain.Patient(reply))
		return reply
	}

	switch {
	case clarified:
		// The one permitted question was already spent
		session.ConversationEnd = true
	case IsClarification(reply):
		session.ClarificationUsed = true
	default:
		session.ConversationEnd = true
	}

	session.Append(domain.Patient(reply))
	return reply
}

func (s *TreatmentService) generate(ctx context.Context, system string, messages []domain.Message) (string, bool) {
	provider, err := s.router.GetProvider(s.provider)
	if err != nil {
		log.Error().Err(err).Msg("treatment turn: no usable provider")
		return treatmentFallback, false
	}

	resp, err := provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		Temperature: treatmentTemperature,
		MaxTokens:   treatmentMaxTokens,
	}, s.model)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("treatment turn: generation failed")
		return treatmentFallback, false
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		log.Warn().Str("provider", provider.Name()).Msg("treatment turn: empty reply from model")
		return treatmentFallback, false
	}
	return reply, true
}
