package llm

import (
	"context"

	"github.com/simclinic/virtual-patient/internal/domain"
)

// Request contains the completion parameters for one simulated-patient turn
type Request struct {
	System      string
	Messages    []domain.Message
	Temperature float32
	MaxTokens   int
}

// Response contains the generation result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate produces the patient's next utterance from the system prompt
	// and the ordered transcript
	Generate(ctx context.Context, req Request, model string) (*Response, error)
}
