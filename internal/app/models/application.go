package models

import (
	"time"
)

// Application defines the application model based on the 'applications' table.
// The job and applicant references are immutable after creation; the resume
// reference is copied from the student's profile CV at submission time and is
// not independently editable.
type Application struct {
	ID                  int64             `json:"id" db:"id" example:"1"`
	JobID               int64             `json:"jobId" db:"job_id" example:"4"`
	ApplicantID         int64             `json:"applicantId" db:"applicant_id" example:"2"` // Submitting student profile
	CoverLetter         string            `json:"coverLetter" db:"cover_letter"`
	ResumeURL           *string           `json:"resume,omitempty" db:"resume_url"`
	AdditionalDocuments *string           `json:"additionalDocuments,omitempty" db:"additional_documents_url"`
	Status              ApplicationStatus `json:"status" db:"status" example:"pending"`
	EmployerNotes       string            `json:"notes" db:"employer_notes"`
	AppliedAt           time.Time         `json:"appliedAt" db:"applied_at"`

	// Relations (populated when needed)
	Job       *Job     `json:"job,omitempty"`
	Applicant *Student `json:"applicant,omitempty"`
}
