package services

import (
	"context"

	"github.com/campushire/campushire/internal/app/auth"
	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// ApplicationService handles the application workflow: student submissions
// and employer-driven status transitions
type ApplicationService struct {
	appRepo ApplicationStore
	jobRepo JobStore
	authz   *auth.AuthorizationService
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo ApplicationStore, jobRepo JobStore, authz *auth.AuthorizationService) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		authz:   authz,
	}
}

// Submit creates a pending application against an active job. The resume
// reference is copied from the student's profile CV; the student cannot set
// it directly.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	student, err := s.authz.RequireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, _, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, apperrors.ErrJobInactive
	}

	app := &models.Application{
		JobID:               job.ID,
		ApplicantID:         student.ID,
		CoverLetter:         req.CoverLetter,
		ResumeURL:           student.CVURL,
		AdditionalDocuments: req.AdditionalDocuments,
		Status:              models.StatusPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	app.Job = job
	app.Applicant = student
	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// ListMine returns the caller's own applications, newest first
func (s *ApplicationService) ListMine(ctx context.Context, userID int64) ([]dto.ApplicationResponse, error) {
	student, err := s.authz.RequireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListByApplicant(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return toApplicationResponses(apps), nil
}

// ListForJob returns the applications received by a job the caller owns.
// A job owned by someone else reports not-found rather than forbidden, so
// employers cannot discover each other's postings.
func (s *ApplicationService) ListForJob(ctx context.Context, userID, jobID int64) ([]dto.ApplicationResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, _, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, apperrors.ErrJobNotFound
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return toApplicationResponses(apps), nil
}

// Get returns a single application, visible only to the applicant and the
// employer owning the job
func (s *ApplicationService) Get(ctx context.Context, userID, applicationID int64) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !s.canView(app, userID) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// UpdateStatus transitions an application's status. Only the employer owning
// the referenced job may do this, and only to a recognized status; anything
// else leaves the application untouched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, applicationID int64, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	employer, err := s.authz.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := models.ApplicationStatus(req.Status)
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	// The repository verifies job ownership and applies the update in one
	// transaction.
	if err := s.appRepo.UpdateStatusOwned(ctx, applicationID, employer.ID, status, req.Notes); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationID", applicationID).
		Str("status", string(status)).
		Msg("Updated application status")

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// canView reports whether the account is the applicant or the employer owning
// the job
func (s *ApplicationService) canView(app *models.Application, userID int64) bool {
	if app.Applicant != nil && app.Applicant.UserID == userID {
		return true
	}
	if app.Job != nil && app.Job.Employer != nil && app.Job.Employer.UserID == userID {
		return true
	}
	return false
}

func toApplicationResponses(apps []*models.Application) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.NewApplicationResponse(app))
	}
	return responses
}
