// File: internal/repository/report/gorm_report_repository.go
package report

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

type gormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) ReportRepository {
	return &gormReportRepository{db: db}
}

func (r *gormReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	if report.PatientID == "" {
		return nil, errors.New("report patient ID is required")
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *gormReportRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.Report, error) {
	q := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("reportdate desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var reports []domain.Report
	err := q.Find(&reports).Error
	return reports, err
}
