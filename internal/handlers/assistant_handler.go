// File: internal/handlers/assistant_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/carelink/carelink-server/internal/middleware"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	"github.com/carelink/carelink-server/internal/services"
	"github.com/carelink/carelink-server/internal/services/assistant"
	"github.com/carelink/carelink-server/internal/services/compute"
)

// AssistantHandler exposes the AI assistant endpoints: grounded chat,
// trend recommendations, appointment summaries, jokes, and the Wolfram
// calculator.
type AssistantHandler struct {
	assistant *assistant.Service
	answerer  compute.Answerer
	logger    services.Logger
}

func NewAssistantHandler(assistantService *assistant.Service, answerer compute.Answerer, logger services.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistantService,
		answerer:  answerer,
		logger:    logger,
	}
}

// Chat answers a patient question grounded in their record and persists
// both sides of the exchange.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		writeMissingFields(w, []string{"question"})
		return
	}

	answer, err := h.assistant.Chat(r.Context(), patientID, req.Question)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("chat request failed", "patient_id", patientID, "error", err)
		writeError(w, "AI request failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"answer":      answer,
		"answer_html": renderMarkdown(answer),
	})
}

// TrendRecommendations returns per-vital advice derived from the
// patient's recent visits. Always answers with all three keys populated.
func (h *AssistantHandler) TrendRecommendations(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	advice, err := h.assistant.TrendRecommendations(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("trend recommendations failed", "patient_id", patientID, "error", err)
		writeError(w, "AI request failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, advice)
}

// AppointmentSummary prepares a short briefing a patient can read before
// seeing their doctor.
func (h *AssistantHandler) AppointmentSummary(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	summary, err := h.assistant.AppointmentSummary(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("appointment summary failed", "patient_id", patientID, "error", err)
		writeError(w, "AI request failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// HealthJoke returns one short, wholesome health joke.
func (h *AssistantHandler) HealthJoke(w http.ResponseWriter, r *http.Request) {
	joke, err := h.assistant.HealthJoke(r.Context())
	if err != nil {
		h.logger.Error("health joke failed", "error", err)
		writeError(w, "AI request failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"joke": joke})
}

// CalculateBMI phrases the measurements as a natural-language question
// and forwards it to the computation backend.
func (h *AssistantHandler) CalculateBMI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weight *float64 `json:"weight"`
		Height *float64 `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.Weight == nil {
		missing = append(missing, "weight")
	}
	if req.Height == nil {
		missing = append(missing, "height")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	question := fmt.Sprintf("What is the BMI of %s kilograms and %s centimeters?",
		strconv.FormatFloat(*req.Weight, 'f', -1, 64),
		strconv.FormatFloat(*req.Height, 'f', -1, 64))

	answer, err := h.answerer.Answer(r.Context(), question)
	if err != nil {
		h.logger.Error("bmi computation failed", "error", err)
		writeError(w, "Computation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"bmi_result": answer})
}
