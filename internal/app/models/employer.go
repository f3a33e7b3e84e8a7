package models

// Employer defines the employer profile model based on the 'employers' table
type Employer struct {
	ID          int64  `json:"id" db:"id" example:"1"`                       // Unique identifier for the profile record
	UserID      int64  `json:"userId" db:"user_id" example:"7"`              // ID of the owning account (1:1)
	EmployerID  string `json:"employerId" db:"employer_code" example:"EMP7"` // Derived external identifier, unique
	CompanyName string `json:"companyName" db:"company_name" example:"Acme Inc"`
	Industry    string `json:"industry" db:"industry" example:"Tech"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}
