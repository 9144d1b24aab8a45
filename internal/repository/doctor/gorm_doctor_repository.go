// File: internal/repository/doctor/gorm_doctor_repository.go
package doctor

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type gormDoctorRepository struct {
	db *gorm.DB
}

func NewGormDoctorRepository(db *gorm.DB) DoctorRepository {
	return &gormDoctorRepository{db: db}
}

func (r *gormDoctorRepository) Create(ctx context.Context, doctor *domain.Doctor) (*domain.Doctor, error) {
	if doctor.ID == "" {
		return nil, errors.New("doctor ID is required")
	}
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return nil, err
	}
	return doctor, nil
}

func (r *gormDoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	if id == "" {
		return nil, errors.New("doctor ID is required")
	}
	var doctor domain.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}
