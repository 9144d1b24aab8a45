// File: internal/services/assistant/service.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carelink/carelink-server/internal/domain"
	"github.com/carelink/carelink-server/internal/repository/chatmessage"
	"github.com/carelink/carelink-server/internal/repository/patient"
	"github.com/carelink/carelink-server/internal/repository/question"
	"github.com/carelink/carelink-server/internal/repository/report"
	"github.com/carelink/carelink-server/internal/repository/visit"
	"github.com/carelink/carelink-server/internal/services"
	"github.com/carelink/carelink-server/internal/services/ai"
)

// TrendAdvice is one recommendation per tracked vital sign.
type TrendAdvice struct {
	BloodPressure string `json:"blood_pressure"`
	OxygenLevel   string `json:"oxygen_level"`
	SugarLevel    string `json:"sugar_level"`
}

// Service implements the prompt-assembly-and-parse pattern: gather a
// bounded set of recent records for one patient, render them into a
// deterministic prompt, submit it to the completion provider, and parse
// the semi-structured response back out.
type Service struct {
	config *Config

	patients patient.PatientRepository
	visits   visit.VisitRepository
	reports  report.ReportRepository
	messages chatmessage.ChatMessageRepository
	question question.QuestionRepository

	completions ai.CompletionProvider
	logger      services.Logger
}

func NewService(
	config *Config,
	patients patient.PatientRepository,
	visits visit.VisitRepository,
	reports report.ReportRepository,
	messages chatmessage.ChatMessageRepository,
	questions question.QuestionRepository,
	completions ai.CompletionProvider,
	logger services.Logger,
) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("assistant config: %w", err)
	}
	return &Service{
		config:      config,
		patients:    patients,
		visits:      visits,
		reports:     reports,
		messages:    messages,
		question:    questions,
		completions: completions,
		logger:      logger,
	}, nil
}

// gatherContext loads the bounded patient record. Each group is an
// independent query; nothing here is transactional.
func (s *Service) gatherContext(ctx context.Context, patientID string) (*PatientContext, error) {
	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	visits, err := s.visits.FindByPatient(ctx, patientID, true, s.config.MaxVisits)
	if err != nil {
		return nil, fmt.Errorf("loading visits: %w", err)
	}
	reports, err := s.reports.FindRecentByPatient(ctx, patientID, s.config.MaxReports)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}
	messages, err := s.messages.FindRecentByPatient(ctx, patientID, s.config.MaxChatTurns)
	if err != nil {
		return nil, fmt.Errorf("loading chat history: %w", err)
	}

	return &PatientContext{
		Patient:  p,
		Visits:   visits,
		Reports:  reports,
		Messages: messages,
	}, nil
}

// Chat answers a patient's question with full record context and persists
// the exchange as a user/bot message pair. A failure to persist does not
// roll back anything; the completion already happened.
func (s *Service) Chat(ctx context.Context, patientID, questionText string) (string, error) {
	pc, err := s.gatherContext(ctx, patientID)
	if err != nil {
		return "", err
	}

	prompt := buildChatPrompt(pc, questionText, s.config)
	answer, err := s.completions.Complete(ctx, chatSystemPrompt, prompt)
	if err != nil {
		return "", err
	}

	if _, err := s.messages.Create(ctx, &domain.ChatMessage{
		PatientID: patientID,
		Sender:    domain.ChatSenderUser,
		Message:   questionText,
	}); err != nil {
		s.logger.Error("failed to persist user chat message", "patient_id", patientID, "error", err)
	}
	if _, err := s.messages.Create(ctx, &domain.ChatMessage{
		PatientID: patientID,
		Sender:    domain.ChatSenderBot,
		Message:   answer,
	}); err != nil {
		s.logger.Error("failed to persist bot chat message", "patient_id", patientID, "error", err)
	}

	return answer, nil
}

// AskDirect answers a standalone question without record context and files
// it in the questions table as answered by the assistant.
func (s *Service) AskDirect(ctx context.Context, patientID, questionText string) (string, error) {
	answer, err := s.completions.Complete(ctx, directSystemPrompt, questionText)
	if err != nil {
		return "", err
	}

	if _, err := s.question.Create(ctx, &domain.Question{
		PatientID:      patientID,
		QuestionText:   questionText,
		DoctorResponse: &answer,
		Status:         domain.QuestionStatusAnsweredAI,
		DateRecorded:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		s.logger.Error("failed to persist AI-answered question", "patient_id", patientID, "error", err)
	}

	return answer, nil
}

// TrendRecommendations asks the model for per-vital advice as JSON. A
// malformed model response degrades to the fixed fallback values rather
// than failing the request.
func (s *Service) TrendRecommendations(ctx context.Context, patientID string) (TrendAdvice, error) {
	pc, err := s.gatherContext(ctx, patientID)
	if err != nil {
		return TrendAdvice{}, err
	}

	raw, err := s.completions.Complete(ctx, trendSystemPrompt, buildTrendPrompt(pc))
	if err != nil {
		return TrendAdvice{}, err
	}

	var advice TrendAdvice
	if err := json.Unmarshal([]byte(StripFence(raw)), &advice); err != nil {
		s.logger.Warn("trend response was not valid JSON, using fallback",
			"patient_id", patientID, "error", err)
		return trendFallback, nil
	}
	if advice.BloodPressure == "" {
		advice.BloodPressure = trendFallback.BloodPressure
	}
	if advice.OxygenLevel == "" {
		advice.OxygenLevel = trendFallback.OxygenLevel
	}
	if advice.SugarLevel == "" {
		advice.SugarLevel = trendFallback.SugarLevel
	}

	return advice, nil
}

// AppointmentSummary produces a short clinical summary of the patient's
// recent record for a doctor to read before an appointment.
func (s *Service) AppointmentSummary(ctx context.Context, patientID string) (string, error) {
	pc, err := s.gatherContext(ctx, patientID)
	if err != nil {
		return "", err
	}
	return s.completions.Complete(ctx, summarySystemPrompt, buildSummaryPrompt(pc, s.config))
}

// SummarizeTranscript condenses a visit-recording transcript.
func (s *Service) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	return s.completions.Complete(ctx, summarySystemPrompt,
		fmt.Sprintf(transcriptSummaryPrompt, transcript))
}

// SummarizeImage runs a vision prompt over an uploaded document image.
func (s *Service) SummarizeImage(ctx context.Context, imageURL string) (string, error) {
	return s.completions.CompleteWithImage(ctx, summarySystemPrompt, imageSummaryPrompt, imageURL)
}

// HealthJoke returns one lighthearted joke about healthy habits.
func (s *Service) HealthJoke(ctx context.Context) (string, error) {
	return s.completions.Complete(ctx, jokeSystemPrompt, jokePrompt)
}
