// File: internal/repository/visit/interface.go
package visit

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// VisitRepository persists visits. Visit dates are ISO-8601 strings, so
// "after"/"between" filters are lexicographic string comparisons — correct
// for same-precision timestamps.
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	FindByID(ctx context.Context, id uint) (*domain.Visit, error)

	// FindByPatient returns the patient's visits ordered by visit date.
	// limit <= 0 means no limit.
	FindByPatient(ctx context.Context, patientID string, descending bool, limit int) ([]domain.Visit, error)
	// FindByPatientAfter returns visits strictly after the given timestamp,
	// ascending.
	FindByPatientAfter(ctx context.Context, patientID, after string) ([]domain.Visit, error)

	FindByDoctor(ctx context.Context, doctorID string) ([]domain.Visit, error)
	FindByDoctorAfter(ctx context.Context, doctorID, after string) ([]domain.Visit, error)
	FindByDoctorBetween(ctx context.Context, doctorID, start, end string) ([]domain.Visit, error)

	// UpdateFields applies a partial column update to one visit.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}
