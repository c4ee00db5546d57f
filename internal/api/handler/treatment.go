package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/simclinic/virtual-patient/internal/api/response"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/sim"
)

// TreatmentHandler handles prescription turns
type TreatmentHandler struct {
	treatment *sim.TreatmentService
	store     domain.SessionStore
	stateful  bool
}

// NewTreatmentHandler creates a new treatment handler
func NewTreatmentHandler(treatment *sim.TreatmentService, store domain.SessionStore, stateful bool) *TreatmentHandler {
	return &TreatmentHandler{treatment: treatment, store: store, stateful: stateful}
}

// TreatmentRequest is one prescription turn. Stateless clients carry the
// transcript and the clarification flag themselves.
type TreatmentRequest struct {
	Prescription      string           `json:"prescription"`
	Messages          []domain.Message `json:"messages"`
	ClarificationUsed bool             `json:"clarification_used"`
	SessionID         string           `json:"session_id"`
}

// TreatmentResponse carries the patient reply and the updated exchange state
type TreatmentResponse struct {
	PatientReply      string           `json:"patient_reply"`
	ConversationEnd   bool             `json:"conversation_end"`
	ClarificationUsed bool             `json:"clarification_used"`
	Messages          []domain.Message `json:"messages"`
	SessionID         string           `json:"session_id,omitempty"`
}

// Turn runs one prescription turn
func (h *TreatmentHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req TreatmentRequest
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

func (h *TreatmentHandler) statefulTurn(ctx context.Context, w http.ResponseWriter, req TreatmentRequest) {
	session, err := resolveSession(ctx, h.store, domain.KindTreatment, req.SessionID)
	if err != nil {
		response.InternalError(w, "failed to open session")
		return
	}

	if req.Prescription == "" && len(session.Messages) == 0 {
		session.Append(domain.Patient(sim.TreatmentGreeting))
		if err := h.store.Save(ctx, session); err != nil {
			response.InternalError(w, "failed to save session")
			return
		}
		response.OK(w, TreatmentResponse{
			PatientReply: sim.TreatmentGreeting,
			Messages:     session.Messages,
			SessionID:    session.ID.String(),
		})
		return
	}

	if req.Prescription == "" {
		response.BadRequest(w, "prescription is required")
		return
	}

	reply := h.treatment.Turn(ctx, session, req.Prescription)

	// A finished exchange is single-use; drop the session instead of saving
	if session.ConversationEnd {
		if err := h.store.Delete(ctx, session.ID); err != nil {
			response.InternalError(w, "failed to close session")
			return
		}
	} else if err := h.store.Save(ctx, session); err != nil {
		response.InternalError(w, "failed to save session")
		return
	}

	response.OK(w, TreatmentResponse{
		PatientReply:      reply,
		ConversationEnd:   session.ConversationEnd,
		ClarificationUsed: session.ClarificationUsed,
		Messages:          session.Messages,
		SessionID:         session.ID.String(),
	})
}

func (h *TreatmentHandler) statelessTurn(ctx context.Context, w http.ResponseWriter, req TreatmentRequest) {
	if req.Prescription == "" && len(req.Messages) == 0 {
		response.OK(w, TreatmentResponse{
			PatientReply: sim.TreatmentGreeting,
			Messages:     []domain.Message{domain.Patient(sim.TreatmentGreeting)},
		})
		return
	}

	if req.Prescription == "" {
		response.BadRequest(w, "prescription is required")
		return
	}

	session := &domain.Session{
		Kind:              domain.KindTreatment,
		Messages:          req.Messages,
		ClarificationUsed: req.ClarificationUsed,
	}
	reply := h.treatment.Turn(ctx, session, req.Prescription)

	response.OK(w, TreatmentResponse{
		PatientReply:      reply,
		ConversationEnd:   session.ConversationEnd,
		ClarificationUsed: session.ClarificationUsed,
		Messages:          session.Messages,
	})
}
