package dto

import "github.com/campushire/campushire/internal/app/models"

// UserResponse represents basic account information
type UserResponse struct {
	ID          int64  `json:"id" example:"1"`
	Username    string `json:"username" example:"jdoe"`
	Email       string `json:"email" example:"jdoe@example.com"`
	FirstName   string `json:"firstName" example:"John"`
	LastName    string `json:"lastName" example:"Doe"`
	Role        string `json:"role" example:"student" enums:"student,employer"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// StudentProfileResponse represents a student profile attached to an account
type StudentProfileResponse struct {
	ID             int64   `json:"id" example:"1"`
	StudentID      string  `json:"studentId" example:"S100"`
	Degree         string  `json:"degree,omitempty"`
	YearOfStudy    string  `json:"yearOfStudy,omitempty"`
	CV             *string `json:"cv,omitempty"`
	Bio            string  `json:"bio,omitempty"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	Province       *string `json:"province,omitempty"`
	Zip            *string `json:"zip,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// EmployerProfileResponse represents an employer profile attached to an account
type EmployerProfileResponse struct {
	ID          int64  `json:"id" example:"1"`
	EmployerID  string `json:"employerId" example:"EMP7"`
	CompanyName string `json:"companyName" example:"Acme Inc"`
	Industry    string `json:"industry" example:"Tech"`
}

// ProfileResponse represents the caller's account with its role profile.
// Exactly one of StudentProfile/EmployerProfile is set, matching the role.
type ProfileResponse struct {
	UserResponse
	StudentProfile  *StudentProfileResponse  `json:"studentProfile,omitempty"`
	EmployerProfile *EmployerProfileResponse `json:"employerProfile,omitempty"`
}

// UpdateProfileRequest represents a self-service profile update. All fields
// are optional; student address/bio fields are ignored for employers.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Gender      *string `json:"gender"`

	// Student profile fields
	Bio      *string `json:"bio"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Province *string `json:"province"`
	Zip      *string `json:"zip"`
}

// UploadResponse represents the stored location of an uploaded file
type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// NewUserResponse maps an account model to its response form
func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.RoleType),
	}
	if user.PhoneNumber != nil {
		resp.PhoneNumber = *user.PhoneNumber
	}
	if user.Gender != nil {
		resp.Gender = string(*user.Gender)
	}
	return resp
}

// NewStudentProfileResponse maps a student profile model to its response form
func NewStudentProfileResponse(student *models.Student) *StudentProfileResponse {
	if student == nil {
		return nil
	}
	return &StudentProfileResponse{
		ID:             student.ID,
		StudentID:      student.StudentID,
		Degree:         student.Degree,
		YearOfStudy:    student.YearOfStudy,
		CV:             student.CVURL,
		Bio:            student.Bio,
		Address:        student.Address,
		City:           student.City,
		Province:       student.Province,
		Zip:            student.Zip,
		ProfilePicture: student.ProfilePicture,
	}
}

// NewEmployerProfileResponse maps an employer profile model to its response form
func NewEmployerProfileResponse(employer *models.Employer) *EmployerProfileResponse {
	if employer == nil {
		return nil
	}
	return &EmployerProfileResponse{
		ID:          employer.ID,
		EmployerID:  employer.EmployerID,
		CompanyName: employer.CompanyName,
		Industry:    employer.Industry,
	}
}
