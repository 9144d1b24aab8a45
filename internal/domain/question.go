// File: internal/domain/question.go
package domain

// Question statuses. Status is the only field a question ever transitions.
const (
	QuestionStatusPending    = "Not"
	QuestionStatusAnsweredAI = "answered_by_ai"
	QuestionStatusAnswered   = "Answered"
)

// Question is something a patient asked, either typed or uploaded as audio.
type Question struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	PatientID      string  `json:"patient_id" gorm:"column:patient_id;index;not null"`
	DoctorID       *string `json:"doctor_id" gorm:"column:doctor_id"`
	VisitID        *uint   `json:"visit_id" gorm:"column:visit_id"`
	QuestionText   string  `json:"questiontext" gorm:"column:questiontext"`
	QuestionAudio  *string `json:"questionaudio" gorm:"column:questionaudio"`
	DoctorResponse *string `json:"doctorresponse" gorm:"column:doctorresponse"`
	Status         string  `json:"status" gorm:"default:Not"`
	DateRecorded   string  `json:"daterecorded" gorm:"column:daterecorded;index"`
}
