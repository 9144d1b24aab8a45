// File: internal/repository/doctor/interface.go
package doctor

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// DoctorRepository persists doctor profiles.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) (*domain.Doctor, error)
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
}
