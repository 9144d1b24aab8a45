// File: internal/handlers/doctor_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/carelink/carelink-server/internal/middleware"
	doctorrepo "github.com/carelink/carelink-server/internal/repository/doctor"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	questionrepo "github.com/carelink/carelink-server/internal/repository/question"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/services"
)

// DoctorHandler serves the doctor-facing dashboard queries.
type DoctorHandler struct {
	doctors   doctorrepo.DoctorRepository
	patients  patientrepo.PatientRepository
	visits    visitrepo.VisitRepository
	questions questionrepo.QuestionRepository
	logger    services.Logger
	now       func() time.Time
}

func NewDoctorHandler(
	doctors doctorrepo.DoctorRepository,
	patients patientrepo.PatientRepository,
	visits visitrepo.VisitRepository,
	questions questionrepo.QuestionRepository,
	logger services.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		doctors:   doctors,
		patients:  patients,
		visits:    visits,
		questions: questions,
		logger:    logger,
		now:       time.Now,
	}
}

// DoctorProfile returns the signed-in doctor's profile card.
func (h *DoctorHandler) DoctorProfile(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	doctor, err := h.doctors.FindByID(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, doctorrepo.ErrDoctorNotFound) {
			writeError(w, "Doctor profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not load doctor profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name":           doctor.Name,
		"hospital":       doctor.Hospital,
		"specialization": doctor.Specialization,
	})
}

// PendingQuestions lists unanswered questions from every patient this
// doctor has seen, newest first.
func (h *DoctorHandler) PendingQuestions(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	visits, err := h.visits.FindByDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	seen := map[string]bool{}
	patientIDs := []string{}
	for _, v := range visits {
		if !seen[v.PatientID] {
			seen[v.PatientID] = true
			patientIDs = append(patientIDs, v.PatientID)
		}
	}
	if len(patientIDs) == 0 {
		writeJSON(w, http.StatusOK, []interface{}{})
		return
	}

	questions, err := h.questions.FindPendingByPatients(r.Context(), patientIDs)
	if err != nil {
		writeError(w, "could not load questions", http.StatusInternalServerError)
		return
	}

	out := []map[string]interface{}{}
	for _, q := range questions {
		out = append(out, map[string]interface{}{
			"id":           q.ID,
			"patient_id":   q.PatientID,
			"questiontext": q.QuestionText,
			"daterecorded": q.DateRecorded,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListDoctorPatients returns, for each patient the doctor has visits with,
// the patient's name and last visit date.
func (h *DoctorHandler) ListDoctorPatients(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctorId")
	if doctorID == "" {
		// Fall back to the header identity for clients that omit the
		// query parameter.
		if id, ok := middleware.UserID(r); ok {
			doctorID = id
		}
	}
	if doctorID == "" {
		writeMissingFields(w, []string{"doctorId"})
		return
	}

	visits, err := h.visits.FindByDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	// Latest visit date per patient; ISO-8601 strings compare
	// chronologically.
	lastVisits := map[string]string{}
	for _, v := range visits {
		date := datePart(v.VisitDate)
		if prev, ok := lastVisits[v.PatientID]; !ok || date > prev {
			lastVisits[v.PatientID] = date
		}
	}
	if len(lastVisits) == 0 {
		writeJSON(w, http.StatusOK, []interface{}{})
		return
	}

	ids := make([]string, 0, len(lastVisits))
	for id := range lastVisits {
		ids = append(ids, id)
	}
	patients, err := h.patients.FindByIDs(r.Context(), ids)
	if err != nil {
		writeError(w, "could not load patients", http.StatusInternalServerError)
		return
	}

	out := []map[string]string{}
	for _, p := range patients {
		out = append(out, map[string]string{
			"patient_id": fmt.Sprintf("p%s", p.ID),
			"name":       p.Name,
			"last_visit": lastVisits[p.ID],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// FutureVisits lists this doctor's visits scheduled after now, ascending.
func (h *DoctorHandler) FutureVisits(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "Unauthorized: Doctor ID missing", http.StatusUnauthorized)
		return
	}

	now := h.now().UTC().Format("2006-01-02T15:04:05")
	visits, err := h.visits.FindByDoctorAfter(r.Context(), doctorID, now)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	out := []map[string]interface{}{}
	for _, v := range visits {
		out = append(out, map[string]interface{}{
			"id":         v.ID,
			"patient_id": v.PatientID,
			"doctor_id":  v.DoctorID,
			"visitdate":  v.VisitDate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// TodayVisits lists this doctor's visits within today's UTC day.
func (h *DoctorHandler) TodayVisits(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "Unauthorized: Doctor ID missing", http.StatusUnauthorized)
		return
	}

	day := h.now().UTC().Format("2006-01-02")
	start := day + "T00:00:00"
	end := day + "T23:59:59"

	visits, err := h.visits.FindByDoctorBetween(r.Context(), doctorID, start, end)
	if err != nil {
		writeError(w, "could not load visits", http.StatusInternalServerError)
		return
	}

	out := []map[string]interface{}{}
	for _, v := range visits {
		out = append(out, map[string]interface{}{
			"id":         v.ID,
			"patient_id": v.PatientID,
			"doctor_id":  v.DoctorID,
			"visitdate":  v.VisitDate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// AnswerQuestion records a doctor's reply and closes the question.
func (h *DoctorHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r); !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		QuestionID uint   `json:"question_id"`
		Response   string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.QuestionID == 0 {
		missing = append(missing, "question_id")
	}
	if req.Response == "" {
		missing = append(missing, "response")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	if err := h.questions.Answer(r.Context(), req.QuestionID, req.Response); err != nil {
		if errors.Is(err, questionrepo.ErrQuestionNotFound) {
			writeError(w, "Question not found", http.StatusNotFound)
			return
		}
		writeError(w, "could not answer question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Question answered"})
}
