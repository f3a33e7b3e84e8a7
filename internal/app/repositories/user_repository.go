package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/repositories/user"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// UserRepository combines the account and role-profile repositories behind a
// single facade. Registration writes the account and its profile in one
// transaction so no account can exist without its role profile.
type UserRepository struct {
	db       *pgxpool.Pool
	common   *user.Repository
	student  *user.StudentRepository
	employer *user.EmployerRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db:       db,
		common:   user.NewRepository(db),
		student:  user.NewStudentRepository(db),
		employer: user.NewEmployerRepository(db),
	}
}

// RegisterStudent atomically creates an account and its student profile
func (r *UserRepository) RegisterStudent(ctx context.Context, u *models.User, s *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting registration transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	userID, err := r.common.CreateUserTx(ctx, tx, u)
	if err != nil {
		return err
	}
	u.ID = userID

	s.UserID = userID
	if err := r.student.CreateStudentTx(ctx, tx, s); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing registration transaction: %w", err)
	}

	logger.Info().Int64("userID", userID).Str("studentID", s.StudentID).Msg("Registered student account")
	return nil
}

// RegisterEmployer atomically creates an account and its employer profile
func (r *UserRepository) RegisterEmployer(ctx context.Context, u *models.User, e *models.Employer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting registration transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	userID, err := r.common.CreateUserTx(ctx, tx, u)
	if err != nil {
		return err
	}
	u.ID = userID

	e.UserID = userID
	if err := r.employer.CreateEmployerTx(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing registration transaction: %w", err)
	}

	logger.Info().Int64("userID", userID).Str("employerCode", e.EmployerID).Msg("Registered employer account")
	return nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// GetByUsername retrieves an account by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.common.GetUserByUsername(ctx, username)
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.common.UsernameExists(ctx, username)
}

// EmailExists checks if an email is already in use
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// UpdatePassword replaces the stored password hash for an account
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.common.UpdatePassword(ctx, userID, passwordHash)
}

// UpdateUserProfile applies a partial update to the account row
func (r *UserRepository) UpdateUserProfile(ctx context.Context, userID int64, update user.ProfileUpdate) error {
	return r.common.UpdateUserProfile(ctx, userID, update)
}

// GetStudentByUserID retrieves the student profile owned by an account
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// GetStudentByID retrieves a student profile by its own ID
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.student.GetStudentByID(ctx, id)
}

// StudentIDExists checks if a student identifier is already registered
func (r *UserRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	return r.student.StudentIDExists(ctx, studentID)
}

// UpdateStudentFields applies a partial update to a student profile
func (r *UserRepository) UpdateStudentFields(ctx context.Context, userID int64, update user.StudentFieldsUpdate) error {
	return r.student.UpdateStudentFields(ctx, userID, update)
}

// UpdateStudentCV replaces the stored CV reference for a student
func (r *UserRepository) UpdateStudentCV(ctx context.Context, userID int64, cvURL string) error {
	return r.student.UpdateCV(ctx, userID, cvURL)
}

// UpdateStudentProfilePicture replaces the stored profile picture reference
func (r *UserRepository) UpdateStudentProfilePicture(ctx context.Context, userID int64, pictureURL string) error {
	return r.student.UpdateProfilePicture(ctx, userID, pictureURL)
}

// GetEmployerByUserID retrieves the employer profile owned by an account
func (r *UserRepository) GetEmployerByUserID(ctx context.Context, userID int64) (*models.Employer, error) {
	return r.employer.GetEmployerByUserID(ctx, userID)
}

// GetEmployerByID retrieves an employer profile by its own ID
func (r *UserRepository) GetEmployerByID(ctx context.Context, id int64) (*models.Employer, error) {
	return r.employer.GetEmployerByID(ctx, id)
}

// UpdateEmployerFields applies a partial update to an employer profile
func (r *UserRepository) UpdateEmployerFields(ctx context.Context, userID int64, companyName, industry *string) error {
	return r.employer.UpdateEmployerFields(ctx, userID, companyName, industry)
}
