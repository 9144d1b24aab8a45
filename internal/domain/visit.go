// File: internal/domain/visit.go
package domain

// Visit belongs to exactly one patient and one doctor. VisitDate is stored
// as an ISO-8601 string so range and ordering comparisons can be done
// lexicographically, the same way the portal's database did it.
//
// Vital-sign columns are pointers: nil means the measurement was never
// taken, which is how the trend endpoints decide whether a visit
// contributes a data point.
type Visit struct {
	ID                   uint     `json:"id" gorm:"primaryKey"`
	PatientID            string   `json:"patient_id" gorm:"column:patient_id;index;not null"`
	DoctorID             string   `json:"doctor_id" gorm:"column:doctor_id;index;not null"`
	VisitDate            string   `json:"visitdate" gorm:"column:visitdate;index"`
	Content              string   `json:"content"`
	BloodPressure        *string  `json:"bloodpressure" gorm:"column:bloodpressure"`
	OxygenLevel          *float64 `json:"oxygenlevel" gorm:"column:oxygenlevel"`
	SugarLevel           *float64 `json:"sugarlevel" gorm:"column:sugarlevel"`
	Weight               *float64 `json:"weight"`
	Height               *float64 `json:"height"`
	VisitSummaryAudio    *string  `json:"visitsummaryaudio" gorm:"column:visitsummaryaudio"`
	DoctorRecommendation *string  `json:"doctorrecommendation" gorm:"column:doctorrecommendation"`
}
