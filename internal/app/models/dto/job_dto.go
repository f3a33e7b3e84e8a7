package dto

import (
	"time"

	"github.com/campushire/campushire/internal/app/models"
)

// JobFilter holds the optional, conjunctive filters for public job listing
type JobFilter struct {
	Search     string `form:"search"`
	Location   string `form:"location"`
	JobType    string `form:"type"`
	Experience string `form:"experience"`
}

// CreateJobRequest represents a job posting creation request. The owning
// employer is always taken from the authenticated caller, never from the
// payload.
type CreateJobRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description" binding:"required"`
	JobType            string     `json:"jobType" binding:"required"`
	Experience         string     `json:"experience"`
	DetailedExperience string     `json:"detailedExperience"`
	Education          string     `json:"education"`
	Location           string     `json:"location"`
	SalaryRange        string     `json:"salaryRange"`
	Vacancies          int        `json:"vacancies"`
	IsActive           *bool      `json:"isActive"`
	Deadline           *time.Time `json:"deadline"`
}

// UpdateJobRequest represents a partial job posting update
type UpdateJobRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	JobType            *string    `json:"jobType"`
	Experience         *string    `json:"experience"`
	DetailedExperience *string    `json:"detailedExperience"`
	Education          *string    `json:"education"`
	Location           *string    `json:"location"`
	SalaryRange        *string    `json:"salaryRange"`
	Vacancies          *int       `json:"vacancies"`
	IsActive           *bool      `json:"isActive"`
	Deadline           *time.Time `json:"deadline"`
}

// CompanyInfo summarizes the employer behind a job posting
type CompanyInfo struct {
	Name     string `json:"name" example:"Acme Inc"`
	Industry string `json:"industry" example:"Tech"`
	Email    string `json:"email,omitempty"`
}

// JobResponse represents a job posting
type JobResponse struct {
	ID                 int64        `json:"id" example:"1"`
	Title              string       `json:"title" example:"Backend Engineer"`
	Description        string       `json:"description"`
	JobType            string       `json:"jobType" example:"Engineering"`
	Experience         string       `json:"experience,omitempty"`
	DetailedExperience string       `json:"detailedExperience,omitempty"`
	Education          string       `json:"education,omitempty"`
	Location           string       `json:"location,omitempty"`
	SalaryRange        string       `json:"salaryRange,omitempty"`
	Vacancies          int          `json:"vacancies" example:"2"`
	IsActive           bool         `json:"isActive" example:"true"`
	PostedAt           time.Time    `json:"postedAt"`
	Deadline           *time.Time   `json:"deadline,omitempty"`
	ApplicationsCount  int64        `json:"applicationsCount" example:"3"`
	Company            *CompanyInfo `json:"company,omitempty"`
}

// JobListResponse represents a paginated page of job postings
type JobListResponse struct {
	Jobs       []JobResponse  `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}

// CategoryCount is one entry of the public category breakdown
type CategoryCount struct {
	Category string `json:"category" example:"Engineering"`
	Count    int64  `json:"count" example:"2"`
}

// JobStatsResponse represents aggregate counts over an employer's own jobs
type JobStatsResponse struct {
	TotalJobs         int64 `json:"totalJobs" example:"4"`
	ActiveJobs        int64 `json:"activeJobs" example:"3"`
	TotalApplications int64 `json:"totalApplications" example:"17"`
}

// NewJobResponse maps a job model to its response form
func NewJobResponse(job *models.Job, applicationsCount int64) JobResponse {
	resp := JobResponse{
		ID:                 job.ID,
		Title:              job.Title,
		Description:        job.Description,
		JobType:            job.JobType,
		Experience:         job.Experience,
		DetailedExperience: job.DetailedExperience,
		Education:          job.Education,
		Location:           job.Location,
		SalaryRange:        job.SalaryRange,
		Vacancies:          job.Vacancies,
		IsActive:           job.IsActive,
		PostedAt:           job.PostedAt,
		Deadline:           job.Deadline,
		ApplicationsCount:  applicationsCount,
	}

	if job.Employer != nil {
		resp.Company = &CompanyInfo{
			Name:     job.Employer.CompanyName,
			Industry: job.Employer.Industry,
		}
		if job.Employer.User != nil {
			resp.Company.Email = job.Employer.User.Email
		}
	}

	return resp
}
