package model

// Doctor is the professional profile linked 1:1 to a User with the doctor
// role. The link is a value reference; the store does not enforce it.
type Doctor struct {
	Base
	UserID    int64  `json:"user_id" db:"user_id"`
	Specialty string `json:"specialty" db:"specialty"`
	License   string `json:"license" db:"license"`
	Phone     string `json:"phone" db:"phone"`
}

// UpdateDoctorRequest represents a partial doctor update
type UpdateDoctorRequest struct {
	UserID    *int64  `json:"user_id"`
	Specialty *string `json:"specialty"`
	License   *string `json:"license"`
	Phone     *string `json:"phone"`
}
