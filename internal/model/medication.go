package model

import "time"

// Medication is a stock item in the clinic pharmacy. Stock is expected to
// stay non-negative but the store does not enforce it.
type Medication struct {
	Base
	Name             string     `json:"name" db:"name"`
	Description      string     `json:"description" db:"description"`
	ActiveIngredient string     `json:"active_ingredient" db:"active_ingredient"`
	Form             string     `json:"form" db:"form"`
	Dose             string     `json:"dose" db:"dose"`
	Stock            int        `json:"stock" db:"stock"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
}

// UpdateMedicationRequest represents a partial medication update
type UpdateMedicationRequest struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	ActiveIngredient *string    `json:"active_ingredient"`
	Form             *string    `json:"form"`
	Dose             *string    `json:"dose"`
	Stock            *int       `json:"stock"`
	ExpiryDate       *time.Time `json:"expiry_date"`
}
