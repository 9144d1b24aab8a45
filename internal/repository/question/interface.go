// File: internal/repository/question/interface.go
package question

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// QuestionRepository persists patient questions. Questions are never deleted;
// status is the only field that transitions after creation.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) (*domain.Question, error)
	FindByID(ctx context.Context, id uint) (*domain.Question, error)

	// FindPendingByPatient returns status "Not" questions for one patient.
	FindPendingByPatient(ctx context.Context, patientID string) ([]domain.Question, error)
	// FindPendingByPatients returns status "Not" questions for any of the
	// given patients, newest first.
	FindPendingByPatients(ctx context.Context, patientIDs []string) ([]domain.Question, error)
	// FindOpenByPatient returns every question not yet answered by a
	// doctor, newest first.
	FindOpenByPatient(ctx context.Context, patientID string) ([]domain.Question, error)

	// Answer records a doctor's response and marks the question "Answered".
	Answer(ctx context.Context, id uint, response string) error
}
