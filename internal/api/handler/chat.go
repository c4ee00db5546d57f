package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/simclinic/virtual-patient/internal/api/response"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/sim"
)

// ChatHandler handles patient-chat turns
type ChatHandler struct {
	patient  *sim.PatientService
	store    domain.SessionStore
	stateful bool
}

// NewChatHandler creates a new chat handler. When stateful is set, requests
// without a transcript are keyed by server-side sessions; clients may also
// opt in per request by sending a session_id.
func NewChatHandler(patient *sim.PatientService, store domain.SessionStore, stateful bool) *ChatHandler {
	return &ChatHandler{patient: patient, store: store, stateful: stateful}
}

// ChatRequest is a single doctor chat turn
type ChatRequest struct {
	UserMessage string           `json:"user_message"`
	Messages    []domain.Message `json:"messages"`
	SessionID   string           `json:"session_id"`
}

// ChatResponse carries the patient reply and the updated transcript
type ChatResponse struct {
	Reply           string           `json:"reply"`
	ConversationEnd bool             `json:"conversation_end"`
	Messages        []domain.Message `json:"messages"`
	SessionID       string           `json:"session_id,omitempty"`
}

// Turn runs one chat turn
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if req.SessionID != "" || (h.stateful && len(req.Messages) == 0) {
		h.statefulTurn(r.Context(), w, req)
		return
	}
	h.statelessTurn(r.Context(), w, req)
}

func (h *ChatHandler) statefulTurn(ctx context.Context, w http.ResponseWriter, req ChatRequest) {
	session, err := resolveSession(ctx, h.store, domain.KindPatientChat, req.SessionID)
	if err != nil {
		response.InternalError(w, "failed to open session")
		return
	}

	// First contact with nothing to say: greet without touching the model
	if req.UserMessage == "" && len(session.Messages) == 0 {
		session.Append(domain.Patient(sim.ChatGreeting))
		if err := h.store.Save(ctx, session); err != nil {
			response.InternalError(w, "failed to save session")
			return
		}
		response.OK(w, ChatResponse{
			Reply:     sim.ChatGreeting,
			Messages:  session.Messages,
			SessionID: session.ID.String(),
		})
		return
	}

	if req.UserMessage == "" {
		response.BadRequest(w, "user_message is required")
		return
	}

	reply := h.patient.Turn(ctx, session, req.UserMessage)
	if err := h.store.Save(ctx, session); err != nil {
		response.InternalError(w, "failed to save session")
		return
	}

	response.OK(w, ChatResponse{
		Reply:           reply,
		ConversationEnd: session.ConversationEnd,
		Messages:        session.Messages,
		SessionID:       session.ID.String(),
	})
}

func (h *ChatHandler) statelessTurn(ctx context.Context, w http.ResponseWriter, req ChatRequest) {
	if req.UserMessage == "" && len(req.Messages) == 0 {
		response.OK(w, ChatResponse{
			Reply:    sim.ChatGreeting,
			Messages: []domain.Message{domain.Patient(sim.ChatGreeting)},
		})
		return
	}

	if req.UserMessage == "" {
		response.BadRequest(w, "user_message is required")
		return
	}

	session := &domain.Session{Kind: domain.KindPatientChat, Messages: req.Messages}
	reply := h.patient.Turn(ctx, session, req.UserMessage)

	response.OK(w, ChatResponse{
		Reply:           reply,
		ConversationEnd: session.ConversationEnd,
		Messages:        session.Messages,
	})
}
