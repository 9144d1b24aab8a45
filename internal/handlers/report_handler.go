// File: internal/handlers/report_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/middleware"
	reportrepo "github.com/carelink/carelink-server/internal/repository/report"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/services"
	"github.com/carelink/carelink-server/internal/services/ai"
	"github.com/carelink/carelink-server/internal/services/assistant"
	"github.com/carelink/carelink-server/internal/services/blob"
	"github.com/carelink/carelink-server/internal/services/ocr"
)

const imageBucket = "image-uploads"

// ReportHandler serves report creation through OCR, vision summarization,
// direct insertion, and visit audio summarization.
type ReportHandler struct {
	reports       reportrepo.ReportRepository
	visits        visitrepo.VisitRepository
	blobs         blob.Store
	extractor     ocr.Extractor
	transcription ai.TranscriptionProvider
	assistant     *assistant.Service
	logger        services.Logger
	now           func() time.Time
}

func NewReportHandler(
	reports reportrepo.ReportRepository,
	visits visitrepo.VisitRepository,
	blobs blob.Store,
	extractor ocr.Extractor,
	transcription ai.TranscriptionProvider,
	assistantService *assistant.Service,
	logger services.Logger,
) *ReportHandler {
	return &ReportHandler{
		reports:       reports,
		visits:        visits,
		blobs:         blobs,
		extractor:     extractor,
		transcription: transcription,
		assistant:     assistantService,
		logger:        logger,
		now:           time.Now,
	}
}

// UploadOCRReport extracts text from an uploaded document and files it as
// a report.
func (h *ReportHandler) UploadOCRReport(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	data, filename, _, err := readUploadedFile(r)
	if err != nil {
		writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	text, err := h.extractor.Extract(ext, data)
	if err != nil {
		writeError(w, "OCR failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.reports.Create(r.Context(), &domain.Report{
		PatientID:     patientID,
		ReportContent: text,
		ReportType:    strings.TrimPrefix(ext, "."),
		ReportDate:    h.now().UTC().Format("2006-01-02"),
	}); err != nil {
		writeError(w, "could not save report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"extracted_text": text})
}

// AddReport inserts a report directly.
func (h *ReportHandler) AddReport(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ReportType    string `json:"report_type"`
		ReportContent string `json:"report_content"`
		ReportDate    string `json:"report_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	missing := []string{}
	if req.ReportType == "" {
		missing = append(missing, "report_type")
	}
	if req.ReportContent == "" {
		missing = append(missing, "report_content")
	}
	if len(missing) > 0 {
		writeMissingFields(w, missing)
		return
	}

	reportDate := req.ReportDate
	if reportDate == "" {
		reportDate = h.now().UTC().Format("2006-01-02")
	}

	created, err := h.reports.Create(r.Context(), &domain.Report{
		PatientID:     patientID,
		ReportType:    req.ReportType,
		ReportContent: req.ReportContent,
		ReportDate:    reportDate,
	})
	if err != nil {
		writeError(w, "could not save report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// SummarizeImage uploads an image, runs a vision summary over its public
// URL, and files the summary as an image report.
func (h *ReportHandler) SummarizeImage(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	data, filename, contentType, err := readUploadedFile(r)
	if err != nil {
		writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}

	imageURL, err := h.blobs.Store(r.Context(), imageBucket, filename, contentType, data)
	if err != nil {
		writeError(w, "Storage upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summary, err := h.assistant.SummarizeImage(r.Context(), imageURL)
	if err != nil {
		writeError(w, "AI request failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.reports.Create(r.Context(), &domain.Report{
		PatientID:     patientID,
		ReportType:    "image",
		ReportContent: summary,
		ReportImage:   &imageURL,
		ReportDate:    h.now().UTC().Format("2006-01-02"),
	}); err != nil {
		writeError(w, "could not save report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"summary":  summary,
		"imageUrl": imageURL,
	})
}

// SummarizeAudio uploads a visit recording, transcribes it, asks the
// assistant for a summary, and attaches the audio URL to the visit. The
// three steps are independent; an earlier success is not rolled back if a
// later step fails.
func (h *ReportHandler) SummarizeAudio(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r); !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	data, filename, contentType, err := readUploadedFile(r)
	if err != nil {
		writeError(w, "no file uploaded", http.StatusBadRequest)
		return
	}

	visitIDStr := r.FormValue("visit_id")
	if visitIDStr == "" {
		writeMissingFields(w, []string{"visit_id"})
		return
	}
	visitID, err := strconv.ParseUint(visitIDStr, 10, 32)
	if err != nil {
		writeError(w, "invalid visit_id", http.StatusBadRequest)
		return
	}

	audioURL, err := h.blobs.Store(r.Context(), audioBucket, filename, contentType, data)
	if err != nil {
		writeError(w, "Storage upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	transcript, err := h.transcription.Transcribe(r.Context(), data, filename)
	if err != nil {
		writeError(w, "Transcription failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summary, err := h.assistant.SummarizeTranscript(r.Context(), transcript)
	if err != nil {
		writeError(w, "AI request failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.visits.UpdateFields(r.Context(), uint(visitID), map[string]interface{}{
		"visitsummaryaudio": audioURL,
	}); err != nil {
		writeError(w, "could not update visit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript": transcript,
		"summary":    summary,
		"audioUrl":   audioURL,
	})
}
