package services

import (
	"context"

	"github.com/campushire/campushire/internal/app/auth"
	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/repositories"
	"github.com/campushire/campushire/internal/app/repositories/user"
	pkgauth "github.com/campushire/campushire/internal/pkg/auth"
	"github.com/campushire/campushire/internal/pkg/email"
	"github.com/campushire/campushire/internal/pkg/filestorage"
)

// UserStore is the account and role-profile persistence surface the services
// depend on
type UserStore interface {
	RegisterStudent(ctx context.Context, u *models.User, s *models.Student) error
	RegisterEmployer(ctx context.Context, u *models.User, e *models.Employer) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateUserProfile(ctx context.Context, userID int64, update user.ProfileUpdate) error
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetEmployerByUserID(ctx context.Context, userID int64) (*models.Employer, error)
	UpdateStudentFields(ctx context.Context, userID int64, update user.StudentFieldsUpdate) error
	UpdateStudentCV(ctx context.Context, userID int64, cvURL string) error
	UpdateStudentProfilePicture(ctx context.Context, userID int64, pictureURL string) error
	UpdateEmployerFields(ctx context.Context, userID int64, companyName, industry *string) error
}

// TokenStore is the session token persistence surface
type TokenStore interface {
	GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error)
	GetUserIDByToken(ctx context.Context, token string) (int64, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

// JobStore is the job posting persistence surface
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, int64, error)
	ListActive(ctx context.Context, filter repositories.JobFilter, offset, limit int) ([]*models.Job, int64, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]repositories.JobWithCount, error)
	UpdateOwned(ctx context.Context, jobID, employerID int64, update repositories.JobUpdate) error
	DeleteOwned(ctx context.Context, jobID, employerID int64) error
	Stats(ctx context.Context, employerID int64) (*repositories.JobStats, error)
	CountsByCategory(ctx context.Context) ([]repositories.CategoryCount, error)
}

// ApplicationStore is the application persistence surface
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error)
	UpdateStatusOwned(ctx context.Context, id, employerID int64, status models.ApplicationStatus, notes *string) error
}

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	JobService         *JobService
	ApplicationService *ApplicationService
}

// NewServices wires the services to the concrete repositories
func NewServices(
	repos *repositories.Repositories,
	authz *auth.AuthorizationService,
	resetTokens *pkgauth.ResetTokenService,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	frontendURL string,
) *Services {
	return &Services{
		AuthService:        NewAuthService(repos.UserRepository, repos.TokenRepository, resetTokens, emailService, frontendURL),
		UserService:        NewUserService(repos.UserRepository, storage),
		JobService:         NewJobService(repos.JobRepository, authz),
		ApplicationService: NewApplicationService(repos.ApplicationRepository, repos.JobRepository, authz),
	}
}
