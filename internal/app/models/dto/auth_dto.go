package dto

import "github.com/campushire/campushire/internal/app/models"

// RegisterRequest represents an account registration request.
// Role-dependent fields are validated by the auth service: students require
// firstName, lastName and studentId; employers require companyName and
// industry.
type RegisterRequest struct {
	Username    string          `json:"username" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	Role        models.RoleType `json:"role" binding:"required"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Gender      string          `json:"gender"`

	// Student fields
	StudentID   string `json:"studentId"`
	Degree      string `json:"degree"`
	YearOfStudy string `json:"yearOfStudy"`

	// Employer fields
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
}

// LoginRequest represents login credentials. Username may also be an email
// address.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents an issued bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Token"`
}

// AuthResponse represents a successful registration or login response
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// ChangePasswordRequest represents an authenticated password change
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordConfirmRequest completes the password reset flow
type ResetPasswordConfirmRequest struct {
	UID         string `json:"uid" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
