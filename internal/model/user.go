package model

// User role constants
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
)

// User represents a system user. Emails are stored lowercased; lookups are
// case-insensitive. Inactive users cannot authenticate.
type User struct {
	Base
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Role         string `json:"role" db:"role"`
	Active       bool   `json:"active" db:"active"`
}

// RegisterRequest represents user registration parameters. The active flag
// is not accepted from callers; new accounts always start active.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin doctor nurse receptionist"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Email        *string `json:"email"`
	PasswordHash *string `json:"-"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Role         *string `json:"role"`
	Active       *bool   `json:"active"`
}
