// File: internal/handlers/helpers_test.go
package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2026-03-15", datePart("2026-03-15T09:30:00"))
	assert.Equal(t, "2026-03-15", datePart("2026-03-15 09:30:00"))
	assert.Equal(t, "2026-03-15", datePart("2026-03-15"))
	assert.Equal(t, "", datePart(""))
}

func TestRenderMarkdown(t *testing.T) {
	html := renderMarkdown("**bold** advice")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestWriteMissingFields(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMissingFields(rec, []string{"patient_id", "dosage"})

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing fields: patient_id, dosage")
}
