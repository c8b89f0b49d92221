package model

import "time"

// Base contains common fields for all models. Keys are store-assigned
// integers, unique per table and never reused after deletion.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
