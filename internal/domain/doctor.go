// File: internal/domain/doctor.go
package domain

// Doctor is read-only after signup.
type Doctor struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Name           string `json:"name"`
	Hospital       string `json:"hospital"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
}
