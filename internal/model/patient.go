package model

import "time"

// Patient represents a clinic patient. The national id is a natural key but
// uniqueness is deliberately not enforced anywhere.
type Patient struct {
	Base
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	BirthDate  time.Time `json:"birth_date" db:"birth_date"`
	Gender     string    `json:"gender" db:"gender"`
	Address    string    `json:"address" db:"address"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	NationalID string    `json:"national_id" db:"national_id"`
	BloodType  *string   `json:"blood_type,omitempty" db:"blood_type"`
	Allergies  *string   `json:"allergies,omitempty" db:"allergies"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	FirstName  string    `json:"first_name" validate:"required"`
	LastName   string    `json:"last_name" validate:"required"`
	BirthDate  time.Time `json:"birth_date" validate:"required"`
	Gender     string    `json:"gender" validate:"required"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email" validate:"omitempty,email"`
	NationalID string    `json:"national_id" validate:"required"`
	BloodType  *string   `json:"blood_type"`
	Allergies  *string   `json:"allergies"`
}

// UpdatePatientRequest represents a partial patient update
type UpdatePatientRequest struct {
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	BirthDate  *time.Time `json:"birth_date"`
	Gender     *string    `json:"gender"`
	Address    *string    `json:"address"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
	NationalID *string    `json:"national_id"`
	BloodType  *string    `json:"blood_type"`
	Allergies  *string    `json:"allergies"`
}
