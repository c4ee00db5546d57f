package sim

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/llm"
)

const (
	patientTemperature = 0.7
	patientMaxTokens   = 150
)

// PatientService runs one chat turn of the simulated patient
type PatientService struct {
	router   *llm.Router
	provider string
	model    string
}

// NewPatientService creates a new patient chat service
func NewPatientService(router *llm.Router, provider, model string) *PatientService {
	return &PatientService{router: router, provider: provider, model: model}
}

// Turn appends the doctor's message, generates the patient reply, records any
// newly disclosed symptoms, and appends the reply to the transcript.
//
// Exactly one generation call is made per turn. A turn against an ended
// session returns a canned reply and leaves the state untouched; a failed
// generation degrades to a fixed fallback reply instead of an error.
func (s *PatientService) Turn(ctx context.Context, session *domain.Session, doctorText string) string {
	if session.ConversationEnd {
		return chatClosedReply
	}

	session.Append(domain.Doctor(doctorText))

	reply := s.generate(ctx, session.Messages)

	for _, symptom := range DetectSymptoms(reply) {
		session.RevealSymptom(symptom)
	}

	session.Append(domain.Patient(reply))
	return reply
}

func (s *PatientService) generate(ctx context.Context, messages []domain.Message) string {
	provider, err := s.router.GetProvider(s.provider)
	if err != nil {
		log.Error().Err(err).Msg("patient turn: no usable provider")
		return patientFallback
	}

	resp, err := provider.Generate(ctx, llm.Request{
		System:      patientSystemPrompt,
		Messages:    messages,
		Temperature: patientTemperature,
		MaxTokens:   patientMaxTokens,
	}, s.model)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("patient turn: generation failed")
		return patientFallback
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		log.Warn().Str("provider", provider.Name()).Msg("patient turn: empty reply from model")
		return patientFallback
	}
	return reply
}
