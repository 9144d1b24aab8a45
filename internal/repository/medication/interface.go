// File: internal/repository/medication/interface.go
package medication

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// MedicationRepository persists medications. Create-only.
type MedicationRepository interface {
	Create(ctx context.Context, medication *domain.Medication) (*domain.Medication, error)
	FindByPatient(ctx context.Context, patientID string) ([]domain.Medication, error)
}
