package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/dberrors"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// ApplicationRepository handles job application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// Create inserts a new application. The unique (job_id, applicant_id)
// constraint rejects a second application to the same job.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_id, applicant_id, cover_letter, resume_url, additional_documents_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applied_at`,
		app.JobID, app.ApplicantID, app.CoverLetter, app.ResumeURL, app.AdditionalDocuments, app.Status).
		Scan(&app.ID, &app.AppliedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_job_id_applicant_id_key") {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	logger.Info().Int64("applicationID", app.ID).Int64("jobID", app.JobID).Msg("Submitted application")
	return nil
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url,
		a.additional_documents_url, a.status, a.employer_notes, a.applied_at`

func scanApplication(row pgx.Row, app *models.Application) error {
	return row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL,
		&app.AdditionalDocuments, &app.Status, &app.EmployerNotes, &app.AppliedAt)
}

// GetByID retrieves an application with its job (including the owning
// employer) and applicant relations populated
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	app := &models.Application{
		Job:       &models.Job{Employer: &models.Employer{}},
		Applicant: &models.Student{User: &models.User{}},
	}

	err := r.db.QueryRow(ctx, `
		SELECT `+applicationColumns+`,
			j.id, j.employer_id, j.title, j.job_type, j.location, j.is_active,
			e.id, e.user_id, e.company_name, e.industry,
			s.id, s.user_id, s.student_number, s.degree,
			u.id, u.first_name, u.last_name, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN employers e ON e.id = j.employer_id
		JOIN students s ON s.id = a.applicant_id
		JOIN users u ON u.id = s.user_id
		WHERE a.id = $1`, id).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL,
		&app.AdditionalDocuments, &app.Status, &app.EmployerNotes, &app.AppliedAt,
		&app.Job.ID, &app.Job.EmployerID, &app.Job.Title, &app.Job.JobType, &app.Job.Location, &app.Job.IsActive,
		&app.Job.Employer.ID, &app.Job.Employer.UserID, &app.Job.Employer.CompanyName, &app.Job.Employer.Industry,
		&app.Applicant.ID, &app.Applicant.UserID, &app.Applicant.StudentID, &app.Applicant.Degree,
		&app.Applicant.User.ID, &app.Applicant.User.FirstName, &app.Applicant.User.LastName, &app.Applicant.User.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// ListByApplicant returns a student's applications, newest first, with a job
// summary on each
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
			j.id, j.employer_id, j.title, j.job_type, j.location, j.is_active,
			e.id, e.company_name, e.industry
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN employers e ON e.id = j.employer_id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.Application, 0)
	for rows.Next() {
		app := &models.Application{Job: &models.Job{Employer: &models.Employer{}}}
		err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL,
			&app.AdditionalDocuments, &app.Status, &app.EmployerNotes, &app.AppliedAt,
			&app.Job.ID, &app.Job.EmployerID, &app.Job.Title, &app.Job.JobType, &app.Job.Location, &app.Job.IsActive,
			&app.Job.Employer.ID, &app.Job.Employer.CompanyName, &app.Job.Employer.Industry)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// ListByJob returns a job's applications, newest first, with applicant details
// on each
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
			s.id, s.user_id, s.student_number, s.degree,
			u.id, u.first_name, u.last_name, u.email
		FROM applications a
		JOIN students s ON s.id = a.applicant_id
		JOIN users u ON u.id = s.user_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("error listing job applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.Application, 0)
	for rows.Next() {
		app := &models.Application{Applicant: &models.Student{User: &models.User{}}}
		err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.ResumeURL,
			&app.AdditionalDocuments, &app.Status, &app.EmployerNotes, &app.AppliedAt,
			&app.Applicant.ID, &app.Applicant.UserID, &app.Applicant.StudentID, &app.Applicant.Degree,
			&app.Applicant.User.ID, &app.Applicant.User.FirstName, &app.Applicant.User.LastName, &app.Applicant.User.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning job application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job application rows: %w", err)
	}

	return apps, nil
}

// UpdateStatusOwned sets the application's status and, when provided, the
// employer notes. The application row is locked and the owning employer
// verified in the same transaction as the update. Missing applications report
// ErrApplicationNotFound; applications on someone else's job report
// ErrPermissionDenied.
func (r *ApplicationRepository) UpdateStatusOwned(ctx context.Context, id, employerID int64, status models.ApplicationStatus, notes *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting status update transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var ownerID int64
	err = tx.QueryRow(ctx, `
		SELECT j.employer_id
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1
		FOR UPDATE OF a`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrApplicationNotFound
		}
		return fmt.Errorf("error locking application row: %w", err)
	}
	if ownerID != employerID {
		return apperrors.ErrPermissionDenied
	}

	_, err = tx.Exec(ctx, `
		UPDATE applications
		SET status = $1, employer_notes = COALESCE($2, employer_notes)
		WHERE id = $3`,
		status, notes, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing status update transaction: %w", err)
	}
	return nil
}
