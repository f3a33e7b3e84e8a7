package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campushire/campushire/internal/app/models"
	appRepos "github.com/campushire/campushire/internal/app/repositories"
	pkgAuth "github.com/campushire/campushire/internal/pkg/auth"
)

const demoPassword = "demo1234"

// CreateDemoData seeds a demo employer, a demo student and a couple of job
// postings for local development. It is a no-op when the demo accounts
// already exist, so running it on every startup is safe.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	exists, err := repos.UserRepository.UsernameExists(ctx, "acme")
	if err != nil {
		return fmt.Errorf("checking demo data: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Demo data already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding demo data...")

	hashed, err := pkgAuth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	employerUser := &appModels.User{
		Username:  "acme",
		Email:     "hr@acme.example.com",
		Password:  hashed,
		FirstName: "Ada",
		LastName:  "Acme",
		RoleType:  appModels.RoleEmployer,
		IsActive:  true,
	}
	employer := &appModels.Employer{
		CompanyName: "Acme Inc",
		Industry:    "Technology",
	}
	if err := repos.UserRepository.RegisterEmployer(ctx, employerUser, employer); err != nil {
		return fmt.Errorf("seeding demo employer: %w", err)
	}

	studentUser := &appModels.User{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  hashed,
		FirstName: "John",
		LastName:  "Doe",
		RoleType:  appModels.RoleStudent,
		IsActive:  true,
	}
	student := &appModels.Student{
		StudentID:   "S100",
		Degree:      "BSc Computer Science",
		YearOfStudy: "3",
	}
	if err := repos.UserRepository.RegisterStudent(ctx, studentUser, student); err != nil {
		return fmt.Errorf("seeding demo student: %w", err)
	}

	deadline := time.Now().AddDate(0, 2, 0)
	jobs := []*appModels.Job{
		{
			EmployerID:  employer.ID,
			Title:       "Backend Engineer",
			Description: "Build and operate the services powering our hiring platform.",
			JobType:     "Engineering",
			Experience:  "2+ years",
			Location:    "Remote",
			SalaryRange: "$60k-$80k",
			Vacancies:   2,
			IsActive:    true,
			Deadline:    &deadline,
		},
		{
			EmployerID:  employer.ID,
			Title:       "Product Designer",
			Description: "Own the end-to-end design of our candidate-facing experience.",
			JobType:     "Design",
			Experience:  "3+ years",
			Location:    "Berlin",
			Vacancies:   1,
			IsActive:    true,
		},
	}
	for _, job := range jobs {
		if err := repos.JobRepository.Create(ctx, job); err != nil {
			return fmt.Errorf("seeding demo job %q: %w", job.Title, err)
		}
	}

	lgr.Info().
		Str("employer", employerUser.Username).
		Str("student", studentUser.Username).
		Int("jobs", len(jobs)).
		Msg("Demo data created")
	return nil
}
