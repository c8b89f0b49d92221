package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment links a patient and a doctor at a given date and time of day.
// Overlap checks and status transition rules are a caller concern.
type Appointment struct {
	Base
	PatientID int64             `json:"patient_id" db:"patient_id"`
	DoctorID  int64             `json:"doctor_id" db:"doctor_id"`
	Date      time.Time         `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Reason    string            `json:"reason" db:"reason"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Notes     *string           `json:"notes,omitempty" db:"notes"`
}

// UpdateAppointmentRequest represents a partial appointment update
type UpdateAppointmentRequest struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	Date      *time.Time         `json:"date"`
	Time      *string            `json:"time"`
	Reason    *string            `json:"reason"`
	Status    *AppointmentStatus `json:"status"`
	Notes     *string            `json:"notes"`
}
