package model

import "time"

type TreatmentStatus string

const (
	TreatmentStatusActive    TreatmentStatus = "active"
	TreatmentStatusCompleted TreatmentStatus = "completed"
	TreatmentStatusCancelled TreatmentStatus = "cancelled"
)

// Treatment is an ongoing or finished course of care for a patient. There is
// no constraint linking treatments to appointments.
type Treatment struct {
	Base
	PatientID   int64           `json:"patient_id" db:"patient_id"`
	DoctorID    int64           `json:"doctor_id" db:"doctor_id"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Description string          `json:"description" db:"description"`
	Status      TreatmentStatus `json:"status" db:"status"`
}

// UpdateTreatmentRequest represents a partial treatment update
type UpdateTreatmentRequest struct {
	PatientID   *int64           `json:"patient_id"`
	DoctorID    *int64           `json:"doctor_id"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	Description *string          `json:"description"`
	Status      *TreatmentStatus `json:"status"`
}
