package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionKind distinguishes the two stateful conversation flows
type SessionKind string

const (
	KindPatientChat SessionKind = "patient_chat"
	KindTreatment   SessionKind = "treatment"
)

// ErrSessionNotFound is returned by Get for unknown or expired session ids.
// Callers recover by starting a fresh session; it is never surfaced to the
// end user.
var ErrSessionNotFound = errors.New("session not found")

// Session holds the per-conversation state for one consultation.
//
// Messages is append-only within a turn and never reordered.
// RevealedSymptoms only grows and holds no duplicates. ClarificationUsed and
// ConversationEnd transition false to true exactly once; once ConversationEnd
// is set the session is terminal and the model is never invoked again.
type Session struct {
	ID                uuid.UUID   `json:"id"`
	Kind              SessionKind `json:"kind"`
	Messages          []Message   `json:"messages"`
	RevealedSymptoms  []string    `json:"revealed_symptoms,omitempty"`
	ClarificationUsed bool        `json:"clarification_used"`
	ConversationEnd   bool        `json:"conversation_end"`
	CreatedAt         time.Time   `json:"created_at"`
}

// NewSession creates an empty session of the given kind
func NewSession(kind SessionKind) *Session {
	return &Session{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the transcript
func (s *Session) Append(m Message) {
	s.Messages = append(s.Messages, m)
}

// HasSymptom reports whether the symptom tag was already disclosed
func (s *Session) HasSymptom(tag string) bool {
	for _, t := range s.RevealedSymptoms {
		if t == tag {
			return true
		}
	}
	return false
}

// RevealSymptom records a disclosed symptom tag. Duplicates are ignored so
// the set stays monotonically growing.
func (s *Session) RevealSymptom(tag string) {
	if s.HasSymptom(tag) {
		return
	}
	s.RevealedSymptoms = append(s.RevealedSymptoms, tag)
}

// SessionStore is the session-state port. A single writer per session id is
// assumed; the store does not guard against concurrent turns on the same id.
type SessionStore interface {
	Create(ctx context.Context, kind SessionKind) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
