package handler

import (
	"encoding/json"
	"net/http"

	"github.com/simclinic/virtual-patient/internal/api/response"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/sim"
)

// EvaluateHandler handles doctor-question evaluation
type EvaluateHandler struct {
	evaluator *sim.EvaluatorService
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(evaluator *sim.EvaluatorService) *EvaluateHandler {
	return &EvaluateHandler{evaluator: evaluator}
}

// EvaluateRequest asks for a verdict on one doctor question
type EvaluateRequest struct {
	DoctorMessage  string   `json:"doctor_message" validate:"required"`
	PatientHistory []string `json:"patient_history"`
}

// EvaluateResponse wraps the structured verdict
type EvaluateResponse struct {
	Evaluation domain.Evaluation `json:"evaluation"`
}

// Evaluate classifies a doctor question against the patient history
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "doctor_message is required")
		return
	}

	evaluation := h.evaluator.Evaluate(r.Context(), req.DoctorMessage, req.PatientHistory)

	response.OK(w, EvaluateResponse{Evaluation: evaluation})
}
