// File: internal/domain/report.go
package domain

// Report holds text extracted from an uploaded document (OCR), a vision
// summary of an uploaded image, or content entered directly.
type Report struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	PatientID     string  `json:"patient_id" gorm:"column:patient_id;index;not null"`
	ReportType    string  `json:"reporttype" gorm:"column:reporttype"`
	ReportContent string  `json:"reportcontent" gorm:"column:reportcontent"`
	ReportImage   *string `json:"reportimage" gorm:"column:reportimage"`
	ReportDate    string  `json:"reportdate" gorm:"column:reportdate;index"`
}
