package model

// Prescription ties a medication to a treatment with dosing instructions.
type Prescription struct {
	Base
	TreatmentID  int64  `json:"treatment_id" db:"treatment_id"`
	MedicationID int64  `json:"medication_id" db:"medication_id"`
	Dose         string `json:"dose" db:"dose"`
	Frequency    string `json:"frequency" db:"frequency"`
	Duration     string `json:"duration" db:"duration"`
	Instructions string `json:"instructions" db:"instructions"`
}

// UpdatePrescriptionRequest represents a partial prescription update
type UpdatePrescriptionRequest struct {
	TreatmentID  *int64  `json:"treatment_id"`
	MedicationID *int64  `json:"medication_id"`
	Dose         *string `json:"dose"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
}
