package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/pkg/apperrors"
)

// EmployerRepository handles employer profile database operations
type EmployerRepository struct {
	db *pgxpool.Pool
}

// NewEmployerRepository creates a new EmployerRepository
func NewEmployerRepository(db *pgxpool.Pool) *EmployerRepository {
	return &EmployerRepository{
		db: db,
	}
}

// CreateEmployerTx inserts an employer profile inside the given transaction.
// The employer code is derived from the owning account ID, so it is unique as
// long as the user_id column is.
func (r *EmployerRepository) CreateEmployerTx(ctx context.Context, tx pgx.Tx, employer *models.Employer) error {
	employer.EmployerID = fmt.Sprintf("EMP%d", employer.UserID)

	err := tx.QueryRow(ctx, `
		INSERT INTO employers (user_id, employer_code, company_name, industry)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		employer.UserID, employer.EmployerID, employer.CompanyName, employer.Industry).Scan(&employer.ID)

	if err != nil {
		return fmt.Errorf("error creating employer profile: %w", err)
	}

	return nil
}

func scanEmployer(row pgx.Row) (*models.Employer, error) {
	employer := &models.Employer{}
	err := row.Scan(
		&employer.ID, &employer.UserID, &employer.EmployerID,
		&employer.CompanyName, &employer.Industry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmployerProfileNotFound
		}
		return nil, fmt.Errorf("error scanning employer row: %w", err)
	}
	return employer, nil
}

// GetEmployerByUserID retrieves the employer profile owned by an account
func (r *EmployerRepository) GetEmployerByUserID(ctx context.Context, userID int64) (*models.Employer, error) {
	return scanEmployer(r.db.QueryRow(ctx, `
		SELECT id, user_id, employer_code, company_name, industry
		FROM employers
		WHERE user_id = $1`, userID))
}

// GetEmployerByID retrieves an employer profile by its own ID
func (r *EmployerRepository) GetEmployerByID(ctx context.Context, id int64) (*models.Employer, error) {
	return scanEmployer(r.db.QueryRow(ctx, `
		SELECT id, user_id, employer_code, company_name, industry
		FROM employers
		WHERE id = $1`, id))
}

// UpdateEmployerFields applies a partial update to an employer profile
func (r *EmployerRepository) UpdateEmployerFields(ctx context.Context, userID int64, companyName, industry *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE employers
		SET company_name = COALESCE($1, company_name),
		    industry = COALESCE($2, industry)
		WHERE user_id = $3`,
		companyName, industry, userID)

	if err != nil {
		return fmt.Errorf("error updating employer profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployerProfileNotFound
	}

	return nil
}
