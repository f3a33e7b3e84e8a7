package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/campushire/campushire/internal/app/auth"
	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/app/repositories"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/helpers"
)

const (
	minJobTitleLength       = 5
	minJobDescriptionLength = 20
)

// JobService handles the job catalog: public browsing plus ownership-scoped
// management
type JobService struct {
	jobRepo JobStore
	authz   *auth.AuthorizationService
}

// NewJobService creates a new JobService
func NewJobService(jobRepo JobStore, authz *auth.AuthorizationService) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		authz:   authz,
	}
}

func validateJobTitle(title string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < minJobTitleLength {
		return fmt.Errorf("%w: title must be at least %d characters long", apperrors.ErrValidationFailed, minJobTitleLength)
	}
	return nil
}

func validateJobDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < minJobDescriptionLength {
		return fmt.Errorf("%w: description must be at least %d characters long", apperrors.ErrValidationFailed, minJobDescriptionLength)
	}
	return nil
}

// ListActive returns a page of active jobs matching the public filters
func (s *JobService) ListActive(ctx context.Context, filter dto.JobFilter, page, size int) (*dto.JobListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	jobs, total, err := s.jobRepo.ListActive(ctx, repositories.JobFilter{
		Search:     filter.Search,
		Location:   filter.Location,
		JobType:    filter.JobType,
		Experience: filter.Experience,
	}, int(offset), limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, dto.NewJobResponse(job, 0))
	}

	return &dto.JobListResponse{
		Jobs:       responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetByID returns a single job with its company details and application count
func (s *JobService) GetByID(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, applications, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewJobResponse(job, applications)
	return &resp, nil
}

// CountsByCategory returns the number of active jobs per category
func (s *JobService) CountsByCategory(ctx context.Context) ([]dto.CategoryCount, error) {
	counts, err := s.jobRepo.CountsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CategoryCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, dto.CategoryCount{Category: c.Category, Count: c.Count})
	}
	return result, nil
}

// Create opens a new posting owned by the caller's employer profile
func (s *JobService) Create(ctx context.Context, userID int64, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateJobTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateJobDescription(req.Description); err != nil {
		return nil, err
	}

	job := &models.Job{
		EmployerID:         employer.ID,
		Title:              req.Title,
		Description:        req.Description,
		JobType:            req.JobType,
		Experience:         req.Experience,
		DetailedExperience: req.DetailedExperience,
		Education:          req.Education,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		Vacancies:          req.Vacancies,
		IsActive:           true,
		Deadline:           req.Deadline,
	}
	if job.Vacancies <= 0 {
		job.Vacancies = 1
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	job.Employer = employer
	resp := dto.NewJobResponse(job, 0)
	return &resp, nil
}

// Update applies a partial update to a posting the caller owns
func (s *JobService) Update(ctx context.Context, userID, jobID int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateJobTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := validateJobDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	err = s.jobRepo.UpdateOwned(ctx, jobID, employer.ID, repositories.JobUpdate{
		Title:              req.Title,
		Description:        req.Description,
		JobType:            req.JobType,
		Experience:         req.Experience,
		DetailedExperience: req.DetailedExperience,
		Education:          req.Education,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		Vacancies:          req.Vacancies,
		IsActive:           req.IsActive,
		Deadline:           req.Deadline,
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, jobID)
}

// Delete removes a posting the caller owns along with its applications
func (s *JobService) Delete(ctx context.Context, userID, jobID int64) error {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return err
	}

	return s.jobRepo.DeleteOwned(ctx, jobID, employer.ID)
}

// ListMine returns all postings owned by the caller, including inactive ones
func (s *JobService) ListMine(ctx context.Context, userID int64) ([]dto.JobResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.ListByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, dto.NewJobResponse(&jobs[i].Job, jobs[i].ApplicationsCount))
	}
	return responses, nil
}

// Stats returns aggregate counts over the caller's own postings
func (s *JobService) Stats(ctx context.Context, userID int64) (*dto.JobStatsResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.jobRepo.Stats(ctx, employer.ID)
	if err != nil {
		return nil, err
	}

	return &dto.JobStatsResponse{
		TotalJobs:         stats.TotalJobs,
		ActiveJobs:        stats.ActiveJobs,
		TotalApplications: stats.TotalApplications,
	}, nil
}
