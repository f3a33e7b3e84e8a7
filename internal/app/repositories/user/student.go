package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/dberrors"
)

// StudentFieldsUpdate carries the optional student-profile fields of a partial
// profile update. Nil pointers leave the column untouched.
type StudentFieldsUpdate struct {
	Degree      *string
	YearOfStudy *string
	Bio         *string
	Address     *string
	City        *string
	Province    *string
	Zip         *string
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudentTx inserts a student profile inside the given transaction,
// alongside the account row it belongs to.
func (r *StudentRepository) CreateStudentTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO students (user_id, student_number, degree, year_of_study, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		student.UserID, student.StudentID, student.Degree, student.YearOfStudy, student.Bio).Scan(&student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_number_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.UserID, &student.StudentID, &student.Degree, &student.YearOfStudy,
		&student.CVURL, &student.Bio, &student.Address, &student.City, &student.Province,
		&student.Zip, &student.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentProfileNotFound
		}
		return nil, fmt.Errorf("error scanning student row: %w", err)
	}
	return student, nil
}

const studentColumns = `id, user_id, student_number, degree, year_of_study,
		cv_url, bio, address, city, province, zip, profile_picture_url`

// GetStudentByUserID retrieves the student profile owned by an account
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE user_id = $1`, userID))
}

// GetStudentByID retrieves a student profile by its own ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1`, id))
}

// StudentIDExists checks if a student identifier is already registered
func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_number = $1)`,
		studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student identifier: %w", err)
	}

	return exists, nil
}

// UpdateStudentFields applies a partial update to a student profile
func (r *StudentRepository) UpdateStudentFields(ctx context.Context, userID int64, update StudentFieldsUpdate) error {
	builder := r.sb.Update("students").Where(squirrel.Eq{"user_id": userID})

	changed := false
	set := func(column string, value *string) {
		if value != nil {
			builder = builder.Set(column, *value)
			changed = true
		}
	}
	set("degree", update.Degree)
	set("year_of_study", update.YearOfStudy)
	set("bio", update.Bio)
	set("address", update.Address)
	set("city", update.City)
	set("province", update.Province)
	set("zip", update.Zip)

	if !changed {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build student update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentProfileNotFound
	}

	return nil
}

// UpdateCV replaces the stored CV reference for a student
func (r *StudentRepository) UpdateCV(ctx context.Context, userID int64, cvURL string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET cv_url = $1
		WHERE user_id = $2`,
		cvURL, userID)

	if err != nil {
		return fmt.Errorf("error updating student CV: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentProfileNotFound
	}

	return nil
}

// UpdateProfilePicture replaces the stored profile picture reference for a student
func (r *StudentRepository) UpdateProfilePicture(ctx context.Context, userID int64, pictureURL string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET profile_picture_url = $1
		WHERE user_id = $2`,
		pictureURL, userID)

	if err != nil {
		return fmt.Errorf("error updating profile picture: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentProfileNotFound
	}

	return nil
}
