package dto

import (
	"time"

	"github.com/campushire/campushire/internal/app/models"
)

// SubmitApplicationRequest represents an application submission. The applicant
// is always the authenticated student; the resume reference is copied from the
// student's profile CV server-side.
type SubmitApplicationRequest struct {
	JobID               int64   `json:"jobId" binding:"required" example:"4"`
	CoverLetter         string  `json:"coverLetter" binding:"required"`
	AdditionalDocuments *string `json:"additionalDocuments"`
}

// UpdateApplicationStatusRequest represents a status transition performed by
// the employer owning the job
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"reviewed"`
	Notes  *string `json:"notes"`
}

// ApplicantInfo summarizes the student behind an application
type ApplicantInfo struct {
	StudentID string `json:"studentId" example:"S2023001"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
	Email     string `json:"email,omitempty"`
	Degree    string `json:"degree,omitempty"`
}

// JobSummary is the embedded job view carried on application responses
type JobSummary struct {
	ID       int64  `json:"id" example:"4"`
	Title    string `json:"title" example:"Backend Engineer"`
	JobType  string `json:"jobType,omitempty"`
	Location string `json:"location,omitempty"`
	Company  string `json:"company,omitempty"`
	IsActive bool   `json:"isActive"`
}

// ApplicationResponse represents a job application
type ApplicationResponse struct {
	ID                  int64          `json:"id" example:"1"`
	JobID               int64          `json:"jobId" example:"4"`
	CoverLetter         string         `json:"coverLetter"`
	Resume              *string        `json:"resume,omitempty"`
	AdditionalDocuments *string        `json:"additionalDocuments,omitempty"`
	Status              string         `json:"status" example:"pending"`
	Notes               string         `json:"notes,omitempty"`
	AppliedAt           time.Time      `json:"appliedAt"`
	Job                 *JobSummary    `json:"job,omitempty"`
	Applicant           *ApplicantInfo `json:"applicant,omitempty"`
}

// ApplicationListResponse represents a list of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int                   `json:"total" example:"3"`
}

// NewApplicationResponse maps an application model to its response form
func NewApplicationResponse(app *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:                  app.ID,
		JobID:               app.JobID,
		CoverLetter:         app.CoverLetter,
		Resume:              app.ResumeURL,
		AdditionalDocuments: app.AdditionalDocuments,
		Status:              string(app.Status),
		Notes:               app.EmployerNotes,
		AppliedAt:           app.AppliedAt,
	}

	if app.Job != nil {
		resp.Job = &JobSummary{
			ID:       app.Job.ID,
			Title:    app.Job.Title,
			JobType:  app.Job.JobType,
			Location: app.Job.Location,
			IsActive: app.Job.IsActive,
		}
		if app.Job.Employer != nil {
			resp.Job.Company = app.Job.Employer.CompanyName
		}
	}

	if app.Applicant != nil {
		resp.Applicant = &ApplicantInfo{
			StudentID: app.Applicant.StudentID,
			FirstName: "",
			LastName:  "",
			Degree:    app.Applicant.Degree,
		}
		if app.Applicant.User != nil {
			resp.Applicant.FirstName = app.Applicant.User.FirstName
			resp.Applicant.LastName = app.Applicant.User.LastName
			resp.Applicant.Email = app.Applicant.User.Email
		}
	}

	return resp
}
