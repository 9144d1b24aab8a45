// File: internal/handlers/visit_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/services"
)

func newVisitHandler(repo *stubVisitRepo) *VisitHandler {
	h := NewVisitHandler(repo, &services.NoOpLogger{})
	h.now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	}
	return h
}

func TestCreateVisitListsMissingFields(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	body := bytes.NewBufferString(`{"patient_id": "p1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/visits", body)
	rec := httptest.NewRecorder()

	h.CreateVisit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing fields: doctor_id, content")
	assert.Empty(t, repo.created, "no row should be inserted on validation failure")
}

func TestCreateVisitDefaultsVisitDate(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	body := bytes.NewBufferString(`{"patient_id": "p1", "doctor_id": "d1", "content": "checkup"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/visits", body)
	rec := httptest.NewRecorder()

	h.CreateVisit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "2026-03-15T09:30:00", repo.created[0].VisitDate)
}

func TestCreateVisitKeepsCallerVitals(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	body := bytes.NewBufferString(`{
		"patient_id": "p1", "doctor_id": "d1", "content": "checkup",
		"blood_pressure": "120/80", "oxygen_level": 97.5,
		"visit_date": "2026-04-01T10:00:00"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/visits", body)
	rec := httptest.NewRecorder()

	h.CreateVisit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	v := repo.created[0]
	assert.Equal(t, "2026-04-01T10:00:00", v.VisitDate)
	require.NotNil(t, v.BloodPressure)
	assert.Equal(t, "120/80", *v.BloodPressure)
	require.NotNil(t, v.OxygenLevel)
	assert.Equal(t, 97.5, *v.OxygenLevel)
}

func TestCreateAppointmentStoresMemoAsContent(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	body := bytes.NewBufferString(`{"patient_id": "p1", "doctor_id": "d1", "visitdate": "2026-05-01T08:00:00", "memo": "fasting blood test"}`)
	req := httptest.NewRequest(http.MethodPost, "/create-appointment", body)
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "fasting blood test", repo.created[0].Content)
}

func TestGetVisitNotFound(t *testing.T) {
	h := newVisitHandler(&stubVisitRepo{})

	req := httptest.NewRequest(http.MethodGet, "/visit/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.GetVisit(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetVisitCanonicalPayload(t *testing.T) {
	bp := "130/85"
	h := newVisitHandler(&stubVisitRepo{visit: &domain.Visit{
		ID:            42,
		PatientID:     "p1",
		DoctorID:      "d1",
		VisitDate:     "2026-03-01T10:00:00",
		Content:       "annual physical",
		BloodPressure: &bp,
	}})

	req := httptest.NewRequest(http.MethodGet, "/visit/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.GetVisit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, float64(42), payload["visit_id"])
	assert.Equal(t, "p1", payload["patient_id"])
	assert.Equal(t, "annual physical", payload["summary"])
	assert.Equal(t, "130/85", payload["bloodpressure"])
	for _, key := range []string{"doctor_id", "visit_date", "audio_summary_url", "doctor_recommendation", "oxygenlevel", "sugarlevel", "weight", "height"} {
		_, ok := payload[key]
		assert.True(t, ok, "payload missing key %q", key)
	}
}

func TestUpdateVisitIgnoresUnknownFields(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	body := bytes.NewBufferString(`{"bloodpressure": "118/76", "patient_id": "hijack"}`)
	req := httptest.NewRequest(http.MethodPatch, "/update-visit/7", body)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.UpdateVisit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), repo.updatedID)
	assert.Equal(t, map[string]interface{}{"bloodpressure": "118/76"}, repo.updates)
}

func TestUpdateVisitRejectsEmptyAndInvalidBodies(t *testing.T) {
	repo := &stubVisitRepo{}
	h := newVisitHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/update-visit/7", bytes.NewBufferString(`{}`))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()
	h.UpdateVisit(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data provided")

	req = httptest.NewRequest(http.MethodPatch, "/update-visit/7", bytes.NewBufferString(`{"unknown": 1}`))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec = httptest.NewRecorder()
	h.UpdateVisit(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid fields to update")
	assert.Nil(t, repo.updates)
}
