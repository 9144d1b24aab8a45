// File: internal/repository/patient/gorm_patient_repository.go
package patient

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

var ErrPatientNotFound = errors.New("patient not found")

type gormPatientRepository struct {
	db *gorm.DB
}

func NewGormPatientRepository(db *gorm.DB) PatientRepository {
	return &gormPatientRepository{db: db}
}

func (r *gormPatientRepository) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	if patient.ID == "" {
		return nil, errors.New("patient ID is required")
	}
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}

func (r *gormPatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	if id == "" {
		return nil, errors.New("patient ID is required")
	}
	var patient domain.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (r *gormPatientRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Patient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var patients []domain.Patient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&patients).Error
	return patients, err
}

func (r *gormPatientRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	var patients []domain.Patient
	err := r.db.WithContext(ctx).Find(&patients).Error
	return patients, err
}

func (r *gormPatientRepository) Search(ctx context.Context, name, dob string) ([]domain.Patient, error) {
	q := r.db.WithContext(ctx).Model(&domain.Patient{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if dob != "" {
		q = q.Where("dob = ?", dob)
	}
	var patients []domain.Patient
	err := q.Find(&patients).Error
	return patients, err
}
