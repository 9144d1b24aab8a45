// File: internal/handlers/visit_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/middleware"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/services"
)

// VisitHandler serves visit creation, lookup, listing, and partial update.
type VisitHandler struct {
	visits visitrepo.VisitRepository
	logger services.Logger
	now    func() time.Time
}

func NewVisitHandler(visits visitrepo.VisitRepository, logger services.Logger) *VisitHandler {
	return &VisitHandler{visits: visits, logger: logger, now: time.Now}
}

type createVisitRequest struct {
	PatientID            string   `json:"patient_id"`
	DoctorID             string   `json:"doctor_id"`
	Content              string   `json:"content"`
	BloodPressure        *string  `json:"blood_pressure"`
	OxygenLevel          *float64 `json:"oxygen_level"`
	SugarLevel           *float64 `json:"sugar_level"`
	Weight               *float64 `json:"weight"`
	Height               *float64 `json:"height"`
	VisitSummaryAudio    *string  `json:"visit_summary_audio"`
	DoctorRecommendation *string  `json:"doctor_recommendation"`
	VisitDate            string   `json:"visit_date"`
}

// CreateVisit records a new visit. patient_id, doctor_id, and content are
// required; the visit date defaults to now.
func (h *VisitHandler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.PatientID == "" {
		missing = append(missing, "patient_id")
	}
	if req.DoctorID == "" {
		missing = append(missing, "doctor_id")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	visitDate := req.VisitDate
	if visitDate == "" {
		visitDate = h.now().UTC().Format("2006-01-02T15:04:05")
	}

	created, err := h.visits.Create(r.Context(), &domain.Visit{
		PatientID:            req.PatientID,
		DoctorID:             req.DoctorID,
		VisitDate:            visitDate,
		Content:              req.Content,
		BloodPressure:        req.BloodPressure,
		OxygenLevel:          req.OxygenLevel,
		SugarLevel:           req.SugarLevel,
		Weight:               req.Weight,
		Height:               req.Height,
		VisitSummaryAudio:    req.VisitSummaryAudio,
		DoctorRecommendation: req.DoctorRecommendation,
	})
	if err != nil {
		writeError(w, "Failed to create visit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CreateAppointment schedules a future visit; the memo becomes the visit
// content.
func (h *VisitHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID string `json:"patient_id"`
		DoctorID  string `json:"doctor_id"`
		VisitDate string `json:"visitdate"`
		Memo      string `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.PatientID == "" {
		missing = append(missing, "patient_id")
	}
	if req.DoctorID == "" {
		missing = append(missing, "doctor_id")
	}
	if req.VisitDate == "" {
		missing = append(missing, "visitdate")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	created, err := h.visits.Create(r.Context(), &domain.Visit{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		VisitDate: req.VisitDate,
		Content:   req.Memo,
	})
	if err != nil {
		writeError(w, "Failed to create appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PastVisits returns the patient's most recent visits, newest first,
// capped at ten.
func (h *VisitHandler) PastVisits(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	visits, err := h.visits.FindByPatient(r.Context(), patientID, true, 10)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	writeJSON(w, http.StatusOK, visits)
}

// UpcomingVisits returns the patient's visits after now, ascending.
func (h *VisitHandler) UpcomingVisits(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	now := h.now().UTC().Format("2006-01-02T15:04:05")
	visits, err := h.visits.FindByPatientAfter(r.Context(), patientID, now)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	out := []map[string]interface{}{}
	for _, v := range visits {
		out = append(out, map[string]interface{}{
			"visit_id":  v.ID,
			"date":      datePart(v.VisitDate),
			"doctor_id": v.DoctorID,
			"summary":   v.Content,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// visitPayload is the canonical single-visit response shape. The portal's
// earlier revisions carried two conflicting handlers for this route; this
// shape is the union both clients read.
func visitPayload(v *domain.Visit) map[string]interface{} {
	return map[string]interface{}{
		"visit_id":              v.ID,
		"patient_id":            v.PatientID,
		"doctor_id":             v.DoctorID,
		"visit_date":            v.VisitDate,
		"summary":               v.Content,
		"audio_summary_url":     v.VisitSummaryAudio,
		"doctor_recommendation": v.DoctorRecommendation,
		"bloodpressure":         v.BloodPressure,
		"oxygenlevel":           v.OxygenLevel,
		"sugarlevel":            v.SugarLevel,
		"weight":                v.Weight,
		"height":                v.Height,
	}
}

// GetVisit returns one visit in the canonical payload shape.
func (h *VisitHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid visit ID", http.StatusBadRequest)
		return
	}

	visit, err := h.visits.FindByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, visitrepo.ErrVisitNotFound) {
			writeError(w, "Visit not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not load visit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, visitPayload(visit))
}

// visitUpdateFields is the whitelist of columns PATCH may touch.
var visitUpdateFields = map[string]string{
	"bloodpressure":        "bloodpressure",
	"oxygenlevel":          "oxygenlevel",
	"sugarlevel":           "sugarlevel",
	"weight":               "weight",
	"height":               "height",
	"doctorrecommendation": "doctorrecommendation",
	"content":              "content",
	"visitsummaryaudio":    "visitsummaryaudio",
}

// UpdateVisit applies a partial field update to one visit. Unknown fields
// are ignored; a request with no valid field is a 400.
func (h *VisitHandler) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid visit ID", http.StatusBadRequest)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		writeError(w, "No data provided", http.StatusBadRequest)
		return
	}

	update := map[string]interface{}{}
	for field, column := range visitUpdateFields {
		if value, ok := body[field]; ok {
			update[column] = value
		}
	}
	if len(update) == 0 {
		writeError(w, "No valid fields to update", http.StatusBadRequest)
		return
	}

	if err := h.visits.UpdateFields(r.Context(), uint(id), update); err != nil {
		h.logger.Error("visit update failed", "visit_id", id, "error", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Visit updated successfully"})
}
