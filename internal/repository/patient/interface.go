// File: internal/repository/patient/interface.go
package patient

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// PatientRepository persists patient profiles. Patients are created once at
// signup and never mutated afterwards.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Patient, error)
	FindAll(ctx context.Context) ([]domain.Patient, error)
	// Search matches the name as a substring and, when dob is non-empty,
	// the date of birth exactly.
	Search(ctx context.Context, name, dob string) ([]domain.Patient, error)
}
