// File: internal/repository/visit/gorm_visit_repository.go
package visit

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

var ErrVisitNotFound = errors.New("visit not found")

type gormVisitRepository struct {
	db *gorm.DB
}

func NewGormVisitRepository(db *gorm.DB) VisitRepository {
	return &gormVisitRepository{db: db}
}

func (r *gormVisitRepository) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	if visit.PatientID == "" || visit.DoctorID == "" {
		return nil, errors.New("visit patient and doctor IDs are required")
	}
	if err := r.db.WithContext(ctx).Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

func (r *gormVisitRepository) FindByID(ctx context.Context, id uint) (*domain.Visit, error) {
	if id == 0 {
		return nil, errors.New("invalid visit ID")
	}
	var visit domain.Visit
	err := r.db.WithContext(ctx).First(&visit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}
	return &visit, nil
}

func (r *gormVisitRepository) FindByPatient(ctx context.Context, patientID string, descending bool, limit int) ([]domain.Visit, error) {
	order := "visitdate asc"
	if descending {
		order = "visitdate desc"
	}
	q := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order(order)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var visits []domain.Visit
	err := q.Find(&visits).Error
	return visits, err
}

func (r *gormVisitRepository) FindByPatientAfter(ctx context.Context, patientID, after string) ([]domain.Visit, error) {
	var visits []domain.Visit
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND visitdate > ?", patientID, after).
		Order("visitdate asc").
		Find(&visits).Error
	return visits, err
}

func (r *gormVisitRepository) FindByDoctor(ctx context.Context, doctorID string) ([]domain.Visit, error) {
	var visits []domain.Visit
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Find(&visits).Error
	return visits, err
}

func (r *gormVisitRepository) FindByDoctorAfter(ctx context.Context, doctorID, after string) ([]domain.Visit, error) {
	var visits []domain.Visit
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND visitdate > ?", doctorID, after).
		Order("visitdate asc").
		Find(&visits).Error
	return visits, err
}

func (r *gormVisitRepository) FindByDoctorBetween(ctx context.Context, doctorID, start, end string) ([]domain.Visit, error) {
	var visits []domain.Visit
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND visitdate >= ? AND visitdate <= ?", doctorID, start, end).
		Order("visitdate asc").
		Find(&visits).Error
	return visits, err
}

func (r *gormVisitRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 {
		return errors.New("invalid visit ID")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}
	return r.db.WithContext(ctx).
		Model(&domain.Visit{}).
		Where("id = ?", id).
		Updates(fields).Error
}
