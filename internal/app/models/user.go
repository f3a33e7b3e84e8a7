package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID          int64       `json:"id" db:"id" example:"1"`                                   // Unique identifier for the account
	Username    string      `json:"username" db:"username" example:"jdoe"`                    // Unique login name
	Email       string      `json:"email" db:"email" example:"jdoe@example.com"`              // Unique email address
	Password    string      `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	FirstName   string      `json:"firstName" db:"first_name" example:"John"`                 // First name
	LastName    string      `json:"lastName" db:"last_name" example:"Doe"`                    // Last name
	RoleType    RoleType    `json:"role" db:"role_type" example:"student"`                    // Account role (student or employer), immutable after creation
	PhoneNumber *string     `json:"phoneNumber,omitempty" db:"phone_number"`                  // Optional phone number
	Gender      *GenderType `json:"gender,omitempty" db:"gender"`                             // Optional gender tag
	IsActive    bool        `json:"isActive" db:"is_active" example:"true"`                   // Whether the account is active
	IsStaff     bool        `json:"isStaff" db:"is_staff" example:"false"`                    // Staff flag
	CreatedAt   time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the account was last updated
}

// IsStudent reports whether the account has the student role
func (u *User) IsStudent() bool {
	return u.RoleType == RoleStudent
}

// IsEmployer reports whether the account has the employer role
func (u *User) IsEmployer() bool {
	return u.RoleType == RoleEmployer
}
