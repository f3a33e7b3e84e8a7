package models

// Student defines the student profile model based on the 'students' table.
// Exactly one Student or Employer row exists per account, chosen by role.
type Student struct {
	ID             int64   `json:"id" db:"id" example:"1"`                     // Unique identifier for the profile record
	UserID         int64   `json:"userId" db:"user_id" example:"5"`            // ID of the owning account (1:1)
	StudentID      string  `json:"studentId" db:"student_number" example:"S100"` // External student identifier, unique
	Degree         string  `json:"degree" db:"degree" example:"BSc Computer Science"`
	YearOfStudy    string  `json:"yearOfStudy" db:"year_of_study" example:"3"`
	CVURL          *string `json:"cv,omitempty" db:"cv_url"`                   // Stored CV file reference
	Bio            string  `json:"bio" db:"bio"`
	Address        *string `json:"address,omitempty" db:"address"`
	City           *string `json:"city,omitempty" db:"city"`
	Province       *string `json:"province,omitempty" db:"province"`
	Zip            *string `json:"zip,omitempty" db:"zip"`
	ProfilePicture *string `json:"profilePicture,omitempty" db:"profile_picture_url"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}
