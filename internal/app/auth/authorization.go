package auth

import (
	"context"
	"errors"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// ProfileStore resolves role profiles for accounts
type ProfileStore interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetEmployerByUserID(ctx context.Context, userID int64) (*models.Employer, error)
}

// JobGetter resolves jobs for ownership checks
type JobGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Job, int64, error)
}

// AuthorizationService is the single place where role and ownership rules are
// decided. Controllers and services ask it questions; they never inspect role
// rows themselves.
type AuthorizationService struct {
	profiles ProfileStore
	jobs     JobGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(profiles ProfileStore, jobs JobGetter) *AuthorizationService {
	return &AuthorizationService{
		profiles: profiles,
		jobs:     jobs,
	}
}

// RequireStudent resolves the student profile behind an account, or reports
// ErrPermissionDenied when the account has no student profile
func (s *AuthorizationService) RequireStudent(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentProfileNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error resolving student profile")
		return nil, err
	}
	return student, nil
}

// RequireEmployer resolves the employer profile behind an account, or reports
// ErrPermissionDenied when the account has no employer profile
func (s *AuthorizationService) RequireEmployer(ctx context.Context, userID int64) (*models.Employer, error) {
	employer, err := s.profiles.GetEmployerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployerProfileNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error resolving employer profile")
		return nil, err
	}
	return employer, nil
}

// ValidateJobOwnership verifies the account owns the given job and returns
// the employer profile doing the owning. Missing jobs report ErrJobNotFound
// before the ownership question is asked, so callers never leak whether a
// foreign job exists.
func (s *AuthorizationService) ValidateJobOwnership(ctx context.Context, userID, jobID int64) (*models.Employer, error) {
	employer, err := s.RequireEmployer(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, _, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	return employer, nil
}
