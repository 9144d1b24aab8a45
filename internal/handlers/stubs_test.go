// File: internal/handlers/stubs_test.go
package handlers

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
	accountrepo "github.com/carelink/carelink-server/internal/repository/account"
	doctorrepo "github.com/carelink/carelink-server/internal/repository/doctor"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	visitrepo "github.com/carelink/carelink-server/internal/repository/visit"
)

// Stub repositories and adapters shared across the handler tests. Each
// records calls and returns canned data; unimplemented paths return zero
// values.

type stubVisitRepo struct {
	visits     []domain.Visit
	visit      *domain.Visit
	findErr    error
	created    []domain.Visit
	updates    map[string]interface{}
	updatedID  uint
	updateErr  error
}

func (s *stubVisitRepo) Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error) {
	s.created = append(s.created, *v)
	v.ID = uint(len(s.created))
	return v, nil
}

func (s *stubVisitRepo) FindByID(ctx context.Context, id uint) (*domain.Visit, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.visit == nil {
		return nil, visitrepo.ErrVisitNotFound
	}
	return s.visit, nil
}

func (s *stubVisitRepo) FindByPatient(ctx context.Context, patientID string, descending bool, limit int) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) FindByPatientAfter(ctx context.Context, patientID, after string) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) FindByDoctor(ctx context.Context, doctorID string) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) FindByDoctorAfter(ctx context.Context, doctorID, after string) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) FindByDoctorBetween(ctx context.Context, doctorID, start, end string) ([]domain.Visit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID = id
	s.updates = fields
	return nil
}

type stubPatientRepo struct {
	patients []domain.Patient
	patient  *domain.Patient
	created  []domain.Patient
}

func (s *stubPatientRepo) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	s.created = append(s.created, *p)
	return p, nil
}

func (s *stubPatientRepo) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	if s.patient == nil {
		return nil, patientrepo.ErrPatientNotFound
	}
	return s.patient, nil
}

func (s *stubPatientRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Patient, error) {
	return s.patients, nil
}

func (s *stubPatientRepo) FindAll(ctx context.Context) ([]domain.Patient, error) {
	return s.patients, nil
}

func (s *stubPatientRepo) Search(ctx context.Context, name, dob string) ([]domain.Patient, error) {
	return s.patients, nil
}

type stubDoctorRepo struct {
	doctor  *domain.Doctor
	created []domain.Doctor
}

func (s *stubDoctorRepo) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	s.created = append(s.created, *d)
	return d, nil
}

func (s *stubDoctorRepo) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	if s.doctor == nil {
		return nil, doctorrepo.ErrDoctorNotFound
	}
	return s.doctor, nil
}

type stubQuestionRepo struct {
	questions []domain.Question
	created   []domain.Question
	answered  map[uint]string
	answerErr error
}

func (s *stubQuestionRepo) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	s.created = append(s.created, *q)
	q.ID = uint(len(s.created))
	return q, nil
}

func (s *stubQuestionRepo) FindByID(ctx context.Context, id uint) (*domain.Question, error) {
	return nil, nil
}

func (s *stubQuestionRepo) FindPendingByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	return s.questions, nil
}

func (s *stubQuestionRepo) FindPendingByPatients(ctx context.Context, patientIDs []string) ([]domain.Question, error) {
	return s.questions, nil
}

func (s *stubQuestionRepo) FindOpenByPatient(ctx context.Context, patientID string) ([]domain.Question, error) {
	return s.questions, nil
}

func (s *stubQuestionRepo) Answer(ctx context.Context, id uint, response string) error {
	if s.answerErr != nil {
		return s.answerErr
	}
	if s.answered == nil {
		s.answered = map[uint]string{}
	}
	s.answered[id] = response
	return nil
}

type stubMedicationRepo struct {
	medications []domain.Medication
	created     []domain.Medication
}

func (s *stubMedicationRepo) Create(ctx context.Context, m *domain.Medication) (*domain.Medication, error) {
	s.created = append(s.created, *m)
	return m, nil
}

func (s *stubMedicationRepo) FindByPatient(ctx context.Context, patientID string) ([]domain.Medication, error) {
	return s.medications, nil
}

type stubReportRepo struct {
	reports []domain.Report
	created []domain.Report
}

func (s *stubReportRepo) Create(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	s.created = append(s.created, *r)
	return r, nil
}

func (s *stubReportRepo) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.Report, error) {
	return s.reports, nil
}

type stubAccountRepo struct {
	account *domain.Account
	created []domain.Account
}

func (s *stubAccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	s.created = append(s.created, *a)
	return a, nil
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if s.account == nil {
		return nil, accountrepo.ErrAccountNotFound
	}
	return s.account, nil
}

func (s *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if s.account == nil {
		return nil, accountrepo.ErrAccountNotFound
	}
	return s.account, nil
}

type stubBlobStore struct {
	url       string
	err       error
	bucket    string
	filename  string
	data      []byte
}

func (s *stubBlobStore) Store(ctx context.Context, bucket, filename, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.bucket = bucket
	s.filename = filename
	s.data = data
	return s.url, nil
}

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	return s.transcript, s.err
}

type stubChatMessageRepo struct {
	messages []domain.ChatMessage
	created  []domain.ChatMessage
}

func (s *stubChatMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	s.created = append(s.created, *m)
	return m, nil
}

func (s *stubChatMessageRepo) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.ChatMessage, error) {
	return s.messages, nil
}

type stubCompletionProvider struct {
	response     string
	err          error
	lastSystem   string
	lastUser     string
	lastImageURL string
}

func (s *stubCompletionProvider) Complete(ctx context.Context, system, user string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.response, s.err
}

func (s *stubCompletionProvider) CompleteWithImage(ctx context.Context, system, user, imageURL string) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	s.lastImageURL = imageURL
	return s.response, s.err
}

type stubExtractor struct {
	text    string
	err     error
	lastExt string
}

func (s *stubExtractor) Extract(ext string, data []byte) (string, error) {
	s.lastExt = ext
	return s.text, s.err
}

type stubAnswerer struct {
	answer   string
	err      error
	question string
}

func (s *stubAnswerer) Answer(ctx context.Context, question string) (string, error) {
	s.question = question
	return s.answer, s.err
}
