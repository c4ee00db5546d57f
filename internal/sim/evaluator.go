package sim

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/llm"
)

const evaluatorMaxTokens = 300

// EvaluatorService classifies doctor questions against the patient history.
// It is stateless; every call stands alone.
type EvaluatorService struct {
	router   *llm.Router
	provider string
	model    string
}

// NewEvaluatorService creates a new evaluator service
func NewEvaluatorService(router *llm.Router, provider, model string) *EvaluatorService {
	return &EvaluatorService{router: router, provider: provider, model: model}
}

// Evaluate asks the model for a structured verdict on the doctor's question.
// It never returns an error: a transport failure maps to an ERROR verdict and
// unparseable model output maps to WARN, so raw model text cannot leak out.
func (s *EvaluatorService) Evaluate(ctx context.Context, doctorMessage string, patientHistory []string) domain.Evaluation {
	provider, err := s.router.GetProvider(s.provider)
	if err != nil {
		log.Error().Err(err).Msg("evaluate: no usable provider")
		return domain.Evaluation{Verdict: domain.VerdictError, Reason: err.Error()}
	}

	resp, err := provider.Generate(ctx, llm.Request{
		System: evaluatorSystemPrompt,
		Messages: []domain.Message{
			domain.Doctor(buildEvaluatorPrompt(doctorMessage, patientHistory)),
		},
		MaxTokens: evaluatorMaxTokens,
	}, s.model)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("evaluate: generation failed")
		return domain.Evaluation{Verdict: domain.VerdictError, Reason: err.Error()}
	}

	return parseEvaluation(resp.Text)
}

// parseEvaluation decodes the model reply into an Evaluation, degrading to a
// WARN verdict when the reply is not the expected JSON object.
func parseEvaluation(raw string) domain.Evaluation {
	var parsed struct {
		Verdict    string `json:"verdict"`
		Reason     string `json:"reason"`
		Suggestion string `json:"suggestion"`
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &parsed); err != nil {
		log.Warn().Str("raw", raw).Msg("evaluate: invalid JSON from model")
		return domain.Evaluation{Verdict: domain.VerdictWarn, Reason: "invalid JSON from model"}
	}

	return domain.Evaluation{
		Verdict:    domain.ParseVerdict(parsed.Verdict),
		Reason:     parsed.Reason,
		Suggestion: parsed.Suggestion,
	}
}
