package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// JobFilter holds the optional, conjunctive filters for the public listing.
// Empty fields match everything.
type JobFilter struct {
	Search     string
	Location   string
	JobType    string
	Experience string
}

// JobWithCount pairs a job with the number of applications it has received
type JobWithCount struct {
	models.Job
	ApplicationsCount int64
}

// JobStats holds aggregate counts over a single employer's postings
type JobStats struct {
	TotalJobs         int64
	ActiveJobs        int64
	TotalApplications int64
}

// CategoryCount is one entry of the public category breakdown
type CategoryCount struct {
	Category string
	Count    int64
}

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const jobColumns = `j.id, j.employer_id, j.title, j.description, j.job_type, j.experience,
		j.detailed_experience, j.education, j.location, j.salary_range, j.vacancies,
		j.is_active, j.posted_at, j.deadline`

func scanJob(row pgx.Row, job *models.Job) error {
	return row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.JobType, &job.Experience,
		&job.DetailedExperience, &job.Education, &job.Location, &job.SalaryRange, &job.Vacancies,
		&job.IsActive, &job.PostedAt, &job.Deadline)
}

// Create inserts a new job posting owned by the given employer
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO jobs (employer_id, title, description, job_type, experience, detailed_experience,
			education, location, salary_range, vacancies, is_active, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, posted_at`,
		job.EmployerID, job.Title, job.Description, job.JobType, job.Experience, job.DetailedExperience,
		job.Education, job.Location, job.SalaryRange, job.Vacancies, job.IsActive, job.Deadline).
		Scan(&job.ID, &job.PostedAt)

	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}

	logger.Info().Int64("jobID", job.ID).Int64("employerID", job.EmployerID).Msg("Created job posting")
	return nil
}

// GetByID retrieves a job posting with its employer relation and the number
// of applications it has received
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, int64, error) {
	job := &models.Job{Employer: &models.Employer{User: &models.User{}}}
	var applicationsCount int64

	err := r.db.QueryRow(ctx, `
		SELECT `+jobColumns+`,
			e.id, e.user_id, e.employer_code, e.company_name, e.industry, u.email,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
		FROM jobs j
		JOIN employers e ON e.id = j.employer_id
		JOIN users u ON u.id = e.user_id
		WHERE j.id = $1`, id).Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.JobType, &job.Experience,
		&job.DetailedExperience, &job.Education, &job.Location, &job.SalaryRange, &job.Vacancies,
		&job.IsActive, &job.PostedAt, &job.Deadline,
		&job.Employer.ID, &job.Employer.UserID, &job.Employer.EmployerID,
		&job.Employer.CompanyName, &job.Employer.Industry, &job.Employer.User.Email,
		&applicationsCount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrJobNotFound
		}
		return nil, 0, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, applicationsCount, nil
}

func (r *JobRepository) activeFilterConditions(filter JobFilter) []squirrel.Sqlizer {
	conditions := []squirrel.Sqlizer{squirrel.Eq{"j.is_active": true}}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, squirrel.Or{
			squirrel.ILike{"j.title": pattern},
			squirrel.ILike{"j.description": pattern},
			squirrel.ILike{"j.detailed_experience": pattern},
			squirrel.ILike{"e.company_name": pattern},
		})
	}
	if filter.Location != "" {
		conditions = append(conditions, squirrel.ILike{"j.location": "%" + filter.Location + "%"})
	}
	if filter.JobType != "" {
		conditions = append(conditions, squirrel.ILike{"j.job_type": "%" + filter.JobType + "%"})
	}
	if filter.Experience != "" {
		conditions = append(conditions, squirrel.ILike{"j.experience": "%" + filter.Experience + "%"})
	}

	return conditions
}

// ListActive returns a page of active jobs matching the filter, newest first,
// with the total match count for pagination
func (r *JobRepository) ListActive(ctx context.Context, filter JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	conditions := r.activeFilterConditions(filter)

	countBuilder := r.sb.Select("COUNT(*)").
		From("jobs j").
		Join("employers e ON e.id = j.employer_id")
	for _, c := range conditions {
		countBuilder = countBuilder.Where(c)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build job count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting jobs: %w", err)
	}

	listBuilder := r.sb.Select(
		"j.id", "j.employer_id", "j.title", "j.description", "j.job_type", "j.experience",
		"j.detailed_experience", "j.education", "j.location", "j.salary_range", "j.vacancies",
		"j.is_active", "j.posted_at", "j.deadline",
		"e.id", "e.user_id", "e.employer_code", "e.company_name", "e.industry").
		From("jobs j").
		Join("employers e ON e.id = j.employer_id").
		OrderBy("j.posted_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))
	for _, c := range conditions {
		listBuilder = listBuilder.Where(c)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build job list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		job := &models.Job{Employer: &models.Employer{}}
		err := rows.Scan(
			&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.JobType, &job.Experience,
			&job.DetailedExperience, &job.Education, &job.Location, &job.SalaryRange, &job.Vacancies,
			&job.IsActive, &job.PostedAt, &job.Deadline,
			&job.Employer.ID, &job.Employer.UserID, &job.Employer.EmployerID,
			&job.Employer.CompanyName, &job.Employer.Industry)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating job rows: %w", err)
	}

	return jobs, total, nil
}

// ListByEmployer returns all jobs owned by an employer, newest first, each
// with its application count
func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]JobWithCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
		FROM jobs j
		WHERE j.employer_id = $1
		ORDER BY j.posted_at DESC`, employerID)
	if err != nil {
		return nil, fmt.Errorf("error listing employer jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]JobWithCount, 0)
	for rows.Next() {
		var jc JobWithCount
		err := rows.Scan(
			&jc.ID, &jc.EmployerID, &jc.Title, &jc.Description, &jc.JobType, &jc.Experience,
			&jc.DetailedExperience, &jc.Education, &jc.Location, &jc.SalaryRange, &jc.Vacancies,
			&jc.IsActive, &jc.PostedAt, &jc.Deadline,
			&jc.ApplicationsCount)
		if err != nil {
			return nil, fmt.Errorf("error scanning employer job row: %w", err)
		}
		jobs = append(jobs, jc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employer job rows: %w", err)
	}

	return jobs, nil
}

// JobUpdate carries the optional fields of a partial job update. Nil pointers
// leave the column untouched.
type JobUpdate struct {
	Title              *string
	Description        *string
	JobType            *string
	Experience         *string
	DetailedExperience *string
	Education          *string
	Location           *string
	SalaryRange        *string
	Vacancies          *int
	IsActive           *bool
	Deadline           *time.Time
}

// lockOwnedJob locks the job row and verifies ownership. Missing jobs report
// ErrJobNotFound; jobs owned by someone else report ErrPermissionDenied.
func (r *JobRepository) lockOwnedJob(ctx context.Context, tx pgx.Tx, jobID, employerID int64) error {
	var ownerID int64
	err := tx.QueryRow(ctx, `
		SELECT employer_id FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error locking job row: %w", err)
	}
	if ownerID != employerID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// UpdateOwned applies a partial update to a job after verifying the employer
// owns it
func (r *JobRepository) UpdateOwned(ctx context.Context, jobID, employerID int64, update JobUpdate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting job update transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := r.lockOwnedJob(ctx, tx, jobID, employerID); err != nil {
		return err
	}

	builder := r.sb.Update("jobs").Where(squirrel.Eq{"id": jobID})
	changed := false
	setString := func(column string, value *string) {
		if value != nil {
			builder = builder.Set(column, *value)
			changed = true
		}
	}
	setString("title", update.Title)
	setString("description", update.Description)
	setString("job_type", update.JobType)
	setString("experience", update.Experience)
	setString("detailed_experience", update.DetailedExperience)
	setString("education", update.Education)
	setString("location", update.Location)
	setString("salary_range", update.SalaryRange)
	if update.Vacancies != nil {
		builder = builder.Set("vacancies", *update.Vacancies)
		changed = true
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
		changed = true
	}
	if update.Deadline != nil {
		builder = builder.Set("deadline", *update.Deadline)
		changed = true
	}

	if changed {
		sql, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build job update query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating job: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing job update: %w", err)
	}

	return nil
}

// DeleteOwned removes a job after verifying the employer owns it. Applications
// for the job are removed by the ON DELETE CASCADE constraint.
func (r *JobRepository) DeleteOwned(ctx context.Context, jobID, employerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting job delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := r.lockOwnedJob(ctx, tx, jobID, employerID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID); err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing job delete: %w", err)
	}

	logger.Info().Int64("jobID", jobID).Int64("employerID", employerID).Msg("Deleted job posting")
	return nil
}

// Stats returns aggregate counts over an employer's own postings
func (r *JobRepository) Stats(ctx context.Context, employerID int64) (*JobStats, error) {
	stats := &JobStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COALESCE((SELECT COUNT(*) FROM applications a
				JOIN jobs j2 ON j2.id = a.job_id
				WHERE j2.employer_id = $1), 0)
		FROM jobs
		WHERE employer_id = $1`, employerID).
		Scan(&stats.TotalJobs, &stats.ActiveJobs, &stats.TotalApplications)

	if err != nil {
		return nil, fmt.Errorf("error computing job stats: %w", err)
	}

	return stats, nil
}

// CountsByCategory returns the number of active jobs per category, largest
// first
func (r *JobRepository) CountsByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT job_type, COUNT(*)
		FROM jobs
		WHERE is_active = TRUE
		GROUP BY job_type
		ORDER BY COUNT(*) DESC, job_type ASC`)
	if err != nil {
		return nil, fmt.Errorf("error counting jobs by category: %w", err)
	}
	defer rows.Close()

	counts := make([]CategoryCount, 0)
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning category count row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category count rows: %w", err)
	}

	return counts, nil
}
