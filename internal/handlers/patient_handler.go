// File: internal/handlers/patient_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carelink/carelink-server/internal/domain"
	medicationrepo "github.com/carelink/carelink-server/internal/repository/medication"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	questionrepo "github.com/carelink/carelink-server/internal/repository/question"
	reportrepo "github.com/carelink/carelink-server/internal/repository/report"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/middleware"
	"github.com/carelink/carelink-server/internal/services"
)

// PatientHandler serves patient discovery, profiles, dashboards, and
// medications.
type PatientHandler struct {
	patients    patientrepo.PatientRepository
	visits      visitrepo.VisitRepository
	questions   questionrepo.QuestionRepository
	medications medicationrepo.MedicationRepository
	reports     reportrepo.ReportRepository
	logger      services.Logger
}

func NewPatientHandler(
	patients patientrepo.PatientRepository,
	visits visitrepo.VisitRepository,
	questions questionrepo.QuestionRepository,
	medications medicationrepo.MedicationRepository,
	reports reportrepo.ReportRepository,
	logger services.Logger,
) *PatientHandler {
	return &PatientHandler{
		patients:    patients,
		visits:      visits,
		questions:   questions,
		medications: medications,
		reports:     reports,
		logger:      logger,
	}
}

// trendPoint is one (date, value) sample of a vital-sign trend.
type trendPoint struct {
	Date  string      `json:"date"`
	Value interface{} `json:"value"`
}

type healthTrends struct {
	BloodPressure []trendPoint `json:"blood_pressure"`
	OxygenLevel   []trendPoint `json:"oxygen_level"`
	SugarLevel    []trendPoint `json:"sugar_level"`
}

// buildTrends splits one visit list into per-vital trend arrays: a visit
// contributes a point to a trend exactly when that column is non-null,
// dated by the date part of the visit timestamp, in source order.
func buildTrends(visits []domain.Visit) healthTrends {
	t := healthTrends{
		BloodPressure: []trendPoint{},
		OxygenLevel:   []trendPoint{},
		SugarLevel:    []trendPoint{},
	}
	for _, v := range visits {
		date := datePart(v.VisitDate)
		if v.BloodPressure != nil {
			t.BloodPressure = append(t.BloodPressure, trendPoint{Date: date, Value: *v.BloodPressure})
		}
		if v.OxygenLevel != nil {
			t.OxygenLevel = append(t.OxygenLevel, trendPoint{Date: date, Value: *v.OxygenLevel})
		}
		if v.SugarLevel != nil {
			t.SugarLevel = append(t.SugarLevel, trendPoint{Date: date, Value: *v.SugarLevel})
		}
	}
	return t
}

// ListPatients returns every patient row.
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patients.FindAll(r.Context())
	if err != nil {
		writeError(w, "could not list patients", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// SearchPatient matches patients by name substring and optional exact DOB.
func (h *PatientHandler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		DOB  string `json:"dob"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Name == "" && req.DOB == "" {
		writeMissingFields(w, []string{"name", "dob"})
		return
	}

	patients, err := h.patients.Search(r.Context(), req.Name, req.DOB)
	if err != nil {
		writeError(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// GetPatient returns one raw patient row.
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	patient, err := h.patients.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not load patient", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

// PatientProfile combines identity, vital trends, visit history, and
// pending questions for the doctor-facing profile page.
func (h *PatientHandler) PatientProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patient, err := h.patients.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not load patient", http.StatusInternalServerError)
		return
	}

	visits, err := h.visits.FindByPatient(r.Context(), id, false, 0)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	visitHistory := []map[string]string{}
	for _, v := range visits {
		if v.Content != "" {
			visitHistory = append(visitHistory, map[string]string{
				"date":    datePart(v.VisitDate),
				"summary": v.Content,
			})
		}
	}

	pending, err := h.questions.FindPendingByPatient(r.Context(), id)
	if err != nil {
		writeError(w, "could not load questions", http.StatusInternalServerError)
		return
	}
	pendingQuestions := []map[string]string{}
	for _, q := range pending {
		pendingQuestions = append(pendingQuestions, map[string]string{
			"id":            fmt.Sprintf("q%d", q.ID),
			"question_text": q.QuestionText,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patient_info": map[string]string{
			"name":              patient.Name,
			"dob":               patient.DOB,
			"email":             patient.Email,
			"phone":             patient.Phone,
			"address":           patient.Address,
			"preferredlanguage": patient.PreferredLanguage,
		},
		"health_trends":     buildTrends(visits),
		"visit_history":     visitHistory,
		"pending_questions": pendingQuestions,
	})
}

// PatientSummary returns the structured (non-AI) record summary a doctor
// reviews before an appointment.
func (h *PatientHandler) PatientSummary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patient, err := h.patients.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, patientrepo.ErrPatientNotFound) {
			writeError(w, "Patient not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not load patient", http.StatusInternalServerError)
		return
	}

	visits, err := h.visits.FindByPatient(r.Context(), id, true, 3)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}
	medications, err := h.medications.FindByPatient(r.Context(), id)
	if err != nil {
		writeError(w, "could not load medications", http.StatusInternalServerError)
		return
	}
	reports, err := h.reports.FindRecentByPatient(r.Context(), id, 3)
	if err != nil {
		writeError(w, "could not load reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patient":       patient,
		"recent_visits": visits,
		"medications":   medications,
		"recent_reports": reports,
	})
}

// DashboardData powers the patient's landing page: latest vitals, full
// trends, medications, and open questions.
func (h *PatientHandler) DashboardData(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	latest, err := h.visits.FindByPatient(r.Context(), patientID, true, 1)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}
	healthSummary := map[string]interface{}{}
	if len(latest) > 0 {
		v := latest[0]
		healthSummary = map[string]interface{}{
			"bloodpressure":        v.BloodPressure,
			"oxygenlevel":          v.OxygenLevel,
			"sugarlevel":           v.SugarLevel,
			"weight":               v.Weight,
			"height":               v.Height,
			"doctorrecommendation": v.DoctorRecommendation,
			"visitdate":            v.VisitDate,
		}
	}

	visits, err := h.visits.FindByPatient(r.Context(), patientID, false, 0)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	medications, err := h.medications.FindByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, "could not load medications", http.StatusInternalServerError)
		return
	}

	pending, err := h.questions.FindPendingByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, "could not load questions", http.StatusInternalServerError)
		return
	}
	activeQuestions := []map[string]string{}
	for _, q := range pending {
		activeQuestions = append(activeQuestions, map[string]string{
			"id":            fmt.Sprintf("q%d", q.ID),
			"question_text": q.QuestionText,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"health_summary":   healthSummary,
		"health_trends":    buildTrends(visits),
		"medications":      medications,
		"active_questions": activeQuestions,
	})
}

// AddMedication records a new medication for a patient.
func (h *PatientHandler) AddMedication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID      string `json:"patient_id"`
		MedicationName string `json:"medicationname"`
		Dosage         string `json:"dosage"`
		Frequency      string `json:"frequency"`
		StartDate      string `json:"startdate"`
		EndDate        string `json:"enddate"`
		Notes          string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.PatientID == "" {
		missing = append(missing, "patient_id")
	}
	if req.MedicationName == "" {
		missing = append(missing, "medicationname")
	}
	if req.Dosage == "" {
		missing = append(missing, "dosage")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	created, err := h.medications.Create(r.Context(), &domain.Medication{
		PatientID:      req.PatientID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, "could not add medication", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
