// File: internal/handlers/question_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/middleware"
	questionrepo "github.com/carelink/carelink-server/internal/repository/question"
	"github.com/carelink/carelink-server/internal/services"
	"github.com/carelink/carelink-server/internal/services/ai"
	"github.com/carelink/carelink-server/internal/services/assistant"
	"github.com/carelink/carelink-server/internal/services/blob"
)

const audioBucket = "audio-uploads"

// QuestionHandler serves question listing, direct AI answers, and audio
// question uploads.
type QuestionHandler struct {
	questions     questionrepo.QuestionRepository
	blobs         blob.Store
	transcription ai.TranscriptionProvider
	assistant     *assistant.Service
	logger        services.Logger
	now           func() time.Time
}

func NewQuestionHandler(
	questions questionrepo.QuestionRepository,
	blobs blob.Store,
	transcription ai.TranscriptionProvider,
	assistantService *assistant.Service,
	logger services.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		questions:     questions,
		blobs:         blobs,
		transcription: transcription,
		assistant:     assistantService,
		logger:        logger,
		now:           time.Now,
	}
}

// GetQuestions lists the patient's questions not yet answered by a
// doctor, newest first.
func (h *QuestionHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	questions, err := h.questions.FindOpenByPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, "could not load questions", http.StatusInternalServerError)
		return
	}

	out := []map[string]string{}
	for _, q := range questions {
		out = append(out, map[string]string{"questiontext": q.QuestionText})
	}
	writeJSON(w, http.StatusOK, out)
}

// AskAI answers a typed question without record context and files it as
// answered by the assistant.
func (h *QuestionHandler) AskAI(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeError(w, "question is required", http.StatusBadRequest)
		return
	}

	answer, err := h.assistant.AskDirect(r.Context(), patientID, req.Question)
	if err != nil {
		writeError(w, "AI request failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"answer":      answer,
		"answer_html": renderMarkdown(answer),
	})
}

// uploadAndTranscribe is the shared upload-then-transcribe step. The blob
// upload and the transcription are independent calls: a transcription
// failure leaves the already-stored blob in place.
func (h *QuestionHandler) uploadAndTranscribe(r *http.Request) (audioURL, transcript string, status int, errMsg string) {
	data, filename, contentType, err := readUploadedFile(r)
	if err != nil {
		return "", "", http.StatusBadRequest, "no file uploaded"
	}

	audioURL, err = h.blobs.Store(r.Context(), audioBucket, filename, contentType, data)
	if err != nil {
		return "", "", http.StatusInternalServerError, "Storage upload failed: " + err.Error()
	}

	transcript, err = h.transcription.Transcribe(r.Context(), data, filename)
	if err != nil {
		return "", "", http.StatusInternalServerError, "Transcription failed: " + err.Error()
	}

	return audioURL, transcript, http.StatusOK, ""
}

// UploadQuestionAudio stores an audio question: blob upload, Whisper
// transcription, then a pending question row carrying both.
func (h *QuestionHandler) UploadQuestionAudio(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	audioURL, transcript, status, errMsg := h.uploadAndTranscribe(r)
	if errMsg != "" {
		writeError(w, errMsg, status)
		return
	}

	if _, err := h.questions.Create(r.Context(), &domain.Question{
		PatientID:     patientID,
		QuestionText:  transcript,
		QuestionAudio: &audioURL,
		Status:        domain.QuestionStatusPending,
		DateRecorded:  h.now().UTC().Format(time.RFC3339),
	}); err != nil {
		writeError(w, "could not save question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript": transcript,
		"audioUrl":   audioURL,
	})
}

// UploadQuestionAudioForChat transcribes an audio question and runs it
// through the full assistant chat pipeline.
func (h *QuestionHandler) UploadQuestionAudioForChat(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	audioURL, transcript, status, errMsg := h.uploadAndTranscribe(r)
	if errMsg != "" {
		writeError(w, errMsg, status)
		return
	}

	answer, err := h.assistant.Chat(r.Context(), patientID, transcript)
	if err != nil {
		writeError(w, "AI request failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcript": transcript,
		"audioUrl":   audioURL,
		"answer":     answer,
	})
}
