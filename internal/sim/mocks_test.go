package sim

import (
	"context"
	"errors"

	"github.com/simclinic/virtual-patient/internal/llm"
)

// stubProvider replays scripted replies and counts generation calls
type stubProvider struct {
	replies []string
	fail    bool
	calls   int

	lastRequest llm.Request
}

func (s *stubProvider) Name() string              { return "stub" }
func (s *stubProvider) AvailableModels() []string { return []string{"stub-model"} }
func (s *stubProvider) DefaultModel() string      { return "stub-model" }
func (s *stubProvider) IsConfigured() bool        { return true }

func (s *stubProvider) Generate(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	s.calls++
	s.lastRequest = req
	if s.fail {
		return nil, errors.New("upstream unavailable")
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return &llm.Response{Text: reply, Model: "stub-model"}, nil
}

func newStubRouter(p llm.Provider) *llm.Router {
	r := llm.NewRouter("stub")
	r.RegisterProvider(p)
	return r
}
