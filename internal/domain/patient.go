// File: internal/domain/patient.go
package domain

// Patient holds the profile a patient fills in at signup. The ID is the
// account ID, so patients.id doubles as the identity used in the
// Authorization header.
type Patient struct {
	ID                string `json:"id" gorm:"primaryKey"`
	Name              string `json:"name"`
	DOB               string `json:"dob"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	PreferredLanguage string `json:"preferredlanguage" gorm:"column:preferredlanguage"`
}
