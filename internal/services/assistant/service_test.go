// File: internal/services/assistant/service_test.go
package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/carelink-server/internal/domain"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	"github.com/carelink/carelink-server/internal/services"
)

type stubPatients struct {
	patient *domain.Patient
	err     error
}

func (s *stubPatients) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	return p, nil
}

func (s *stubPatients) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.patient, nil
}

func (s *stubPatients) FindByIDs(ctx context.Context, ids []string) ([]domain.Patient, error) {
	return nil, nil
}

func (s *stubPatients) FindAll(ctx context.Context) ([]domain.Patient, error) { return nil, nil }

func (s *stubPatients) Search(ctx context.Context, name, dob string) ([]domain.Patient, error) {
	return nil, nil
}

type stubVisits struct {
	visits []domain.Visit
}

func (s *stubVisits) Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error) {
	return v, nil
}

func (s *stubVisits) FindByID(ctx context.Context, id uint) (*domain.Visit, error) {
	return nil, nil
}

func (s *stubVisits) FindByPatient(ctx context.Context, patientID string, descending bool, limit int) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisits) FindByPatientAfter(ctx context.Context, patientID, after string) ([]domain.Visit, error) {
	return nil, nil
}

func (s *stubVisits) FindByDoctor(ctx context.Context, doctorID string) ([]domain.Visit, error) {
	return nil, nil
}

func (s *stubVisits) FindByDoctorAfter(ctx context.Context, doctorID, after string) ([]domain.Visit, error) {
	return nil, nil
}

func (s *stubVisits) FindByDoctorBetween(ctx context.Context, doctorID, start, end string) ([]domain.Visit, error) {
	return nil, nil
}

func (s *stubVisits) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return nil
}

type stubReports struct {
	reports []domain.Report
}

func (s *stubReports) Create(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	return r, nil
}

func (s *stubReports) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.Report, error) {
	return s.reports, nil
}

type stubMessages struct {
	messages []domain.ChatMessage
	created  []domain.ChatMessage
	createErr error
}

func (s *stubMessages) Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, *m)
	return m, nil
}

func (s *stubMessages) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.ChatMessage, error) {
	return s.messages, nil
}

type stubQuestions struct {
	created []domain.Question
}

func (s *stubQuestions) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	s.created = append(s.created, *q)
	return q, nil
}

func (s *stubQuestions) FindByID(ctx context.Context, id uint) (*domain.Question, error) {
	return nil, nil
}

func (s *stubQuestions) FindPendingByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	return nil, nil
}

func (s *stubQuestions) FindPendingByPatients(ctx context.Context, patientIDs []string) ([]domain.Question, error) {
	return nil, nil
}

func (s *stubQuestions) FindOpenByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	return nil, nil
}

func (s *stubQuestions) Answer(ctx context.Context, id uint, response string) error { return nil }

type stubCompletions struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubCompletions) Complete(ctx context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.response, s.err
}

func (s *stubCompletions) CompleteWithImage(ctx context.Context, system, user, imageURL string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.response, s.err
}

func newTestService(t *testing.T, completions *stubCompletions, messages *stubMessages, questions *stubQuestions) *Service {
	t.Helper()
	bp := "120/80"
	svc, err := NewService(
		DefaultConfig(),
		&stubPatients{patient: &domain.Patient{
			ID:                "p1",
			Name:              "Jane Doe",
			DOB:               "1970-01-01",
			PreferredLanguage: "English",
		}},
		&stubVisits{visits: []domain.Visit{
			{ID: 1, PatientID: "p1", VisitDate: "2026-08-01T10:00:00", BloodPressure: &bp},
		}},
		&stubReports{reports: []domain.Report{
			{ID: 1, PatientID: "p1", ReportDate: "2026-08-02", ReportContent: "CBC within normal limits"},
		}},
		messages,
		questions,
		completions,
		&services.NoOpLogger{},
	)
	require.NoError(t, err)
	return svc
}

func TestChatPersistsBothSidesOfTheExchange(t *testing.T) {
	messages := &stubMessages{}
	completions := &stubCompletions{response: "Drink more water."}
	svc := newTestService(t, completions, messages, &stubQuestions{})

	answer, err := svc.Chat(context.Background(), "p1", "Should I drink more water?")
	require.NoError(t, err)
	assert.Equal(t, "Drink more water.", answer)

	require.Len(t, messages.created, 2)
	assert.Equal(t, domain.ChatSenderUser, messages.created[0].Sender)
	assert.Equal(t, "Should I drink more water?", messages.created[0].Message)
	assert.Equal(t, domain.ChatSenderBot, messages.created[1].Sender)
	assert.Equal(t, "Drink more water.", messages.created[1].Message)
}

func TestChatStillAnswersWhenPersistenceFails(t *testing.T) {
	messages := &stubMessages{createErr: errors.New("disk full")}
	completions := &stubCompletions{response: "Yes."}
	svc := newTestService(t, completions, messages, &stubQuestions{})

	answer, err := svc.Chat(context.Background(), "p1", "Is walking good for me?")
	require.NoError(t, err)
	assert.Equal(t, "Yes.", answer)
}

func TestChatPromptSectionOrder(t *testing.T) {
	completions := &stubCompletions{response: "ok"}
	svc := newTestService(t, completions, &stubMessages{messages: []domain.ChatMessage{
		{Sender: domain.ChatSenderUser, Message: "hi"},
		{Sender: domain.ChatSenderBot, Message: "hello"},
	}}, &stubQuestions{})

	_, err := svc.Chat(context.Background(), "p1", "What about my blood pressure?")
	require.NoError(t, err)

	prompt := completions.lastUser
	sections := []string{
		"Patient Info:",
		"Recent Health Visits:",
		"Uploaded Health Reports:",
		"Recent Chat History:",
		"Patient's new question: What about my blood pressure?",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		require.GreaterOrEqual(t, idx, 0, "prompt missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
	assert.True(t, strings.HasSuffix(prompt, "Answer:"))
}

func TestChatPropagatesUnknownPatient(t *testing.T) {
	svc, err := NewService(
		DefaultConfig(),
		&stubPatients{err: patientrepo.ErrPatientNotFound},
		&stubVisits{},
		&stubReports{},
		&stubMessages{},
		&stubQuestions{},
		&stubCompletions{},
		&services.NoOpLogger{},
	)
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, patientrepo.ErrPatientNotFound)
}

func TestAskDirectFilesAnAnsweredQuestion(t *testing.T) {
	questions := &stubQuestions{}
	completions := &stubCompletions{response: "Paracetamol is fine in normal doses."}
	svc := newTestService(t, completions, &stubMessages{}, questions)

	answer, err := svc.AskDirect(context.Background(), "p1", "Can I take paracetamol?")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol is fine in normal doses.", answer)

	require.Len(t, questions.created, 1)
	q := questions.created[0]
	assert.Equal(t, "p1", q.PatientID)
	assert.Equal(t, "Can I take paracetamol?", q.QuestionText)
	assert.Equal(t, domain.QuestionStatusAnsweredAI, q.Status)
	require.NotNil(t, q.DoctorResponse)
	assert.Equal(t, answer, *q.DoctorResponse)
}

func TestTrendRecommendationsParsesFencedJSON(t *testing.T) {
	completions := &stubCompletions{
		response: "```json\n{\"blood_pressure\": \"a\", \"oxygen_level\": \"b\", \"sugar_level\": \"c\"}\n```",
	}
	svc := newTestService(t, completions, &stubMessages{}, &stubQuestions{})

	advice, err := svc.TrendRecommendations(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, TrendAdvice{BloodPressure: "a", OxygenLevel: "b", SugarLevel: "c"}, advice)
}

func TestTrendRecommendationsFallsBackOnMalformedJSON(t *testing.T) {
	completions := &stubCompletions{response: "I cannot answer in JSON, sorry."}
	svc := newTestService(t, completions, &stubMessages{}, &stubQuestions{})

	advice, err := svc.TrendRecommendations(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, trendFallback, advice)
}

func TestTrendRecommendationsFillsMissingKeys(t *testing.T) {
	completions := &stubCompletions{response: `{"blood_pressure": "looks stable"}`}
	svc := newTestService(t, completions, &stubMessages{}, &stubQuestions{})

	advice, err := svc.TrendRecommendations(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "looks stable", advice.BloodPressure)
	assert.Equal(t, trendFallback.OxygenLevel, advice.OxygenLevel)
	assert.Equal(t, trendFallback.SugarLevel, advice.SugarLevel)
}

func TestReportExcerptTruncation(t *testing.T) {
	long := strings.Repeat("x", 400)
	out := truncateRunes(long, 300)
	assert.Equal(t, 303, len(out))
	assert.True(t, strings.HasSuffix(out, "..."))

	short := "all good"
	assert.Equal(t, short, truncateRunes(short, 300))
}
