package models

import (
	"time"
)

// Job defines the job posting model based on the 'jobs' table.
// A job is owned by the employer profile that created it; the owner is fixed
// at creation and never reassigned.
type Job struct {
	ID                 int64      `json:"id" db:"id" example:"1"`
	EmployerID         int64      `json:"employerId" db:"employer_id" example:"3"` // Owning employer profile
	Title              string     `json:"title" db:"title" example:"Backend Engineer"`
	Description        string     `json:"description" db:"description"`
	JobType            string     `json:"jobType" db:"job_type" example:"Engineering"` // Free-text type/category
	Experience         string     `json:"experience" db:"experience" example:"2+ years"`
	DetailedExperience string     `json:"detailedExperience" db:"detailed_experience"`
	Education          string     `json:"education" db:"education"`
	Location           string     `json:"location" db:"location" example:"Remote"`
	SalaryRange        string     `json:"salaryRange" db:"salary_range" example:"$60k-$80k"`
	Vacancies          int        `json:"vacancies" db:"vacancies" example:"2"`
	IsActive           bool       `json:"isActive" db:"is_active" example:"true"` // Inactive jobs are hidden from public listing and closed to new applications
	PostedAt           time.Time  `json:"postedAt" db:"posted_at"`
	Deadline           *time.Time `json:"deadline,omitempty" db:"deadline"`

	// Relation (populated when needed)
	Employer *Employer `json:"employer,omitempty"`
}
