// File: internal/domain/medication.go
package domain

// Medication is create-only; nothing in the portal edits or deletes one.
type Medication struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	PatientID      string `json:"patient_id" gorm:"column:patient_id;index;not null"`
	MedicationName string `json:"medicationname" gorm:"column:medicationname"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	StartDate      string `json:"startdate" gorm:"column:startdate"`
	EndDate        string `json:"enddate" gorm:"column:enddate"`
	Notes          string `json:"notes"`
}
