// File: internal/repository/report/interface.go
package report

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// ReportRepository persists reports. Create-only.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	// FindRecentByPatient returns the patient's newest reports, newest
	// first. limit <= 0 means no limit.
	FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.Report, error)
}
