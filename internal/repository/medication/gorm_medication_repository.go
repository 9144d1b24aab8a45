// File: internal/repository/medication/gorm_medication_repository.go
package medication

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

type gormMedicationRepository struct {
	db *gorm.DB
}

func NewGormMedicationRepository(db *gorm.DB) MedicationRepository {
	return &gormMedicationRepository{db: db}
}

func (r *gormMedicationRepository) Create(ctx context.Context, medication *domain.Medication) (*domain.Medication, error) {
	if medication.PatientID == "" {
		return nil, errors.New("medication patient ID is required")
	}
	if err := r.db.WithContext(ctx).Create(medication).Error; err != nil {
		return nil, err
	}
	return medication, nil
}

func (r *gormMedicationRepository) FindByPatient(ctx context.Context, patientID string) ([]domain.Medication, error) {
	var medications []domain.Medication
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Find(&medications).Error
	return medications, err
}
