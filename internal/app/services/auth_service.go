package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	pkgauth "github.com/campushire/campushire/internal/pkg/auth"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/email"
	"github.com/campushire/campushire/internal/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration, login and the password lifecycle
type AuthService struct {
	userRepo    UserStore
	tokenRepo   TokenStore
	resetTokens *pkgauth.ResetTokenService
	email       email.EmailService
	frontendURL string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	resetTokens *pkgauth.ResetTokenService,
	emailService email.EmailService,
	frontendURL string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		resetTokens: resetTokens,
		email:       emailService,
		frontendURL: frontendURL,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(address) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, apperrors.ErrInvalidEmail)
	}
	return nil
}

// validatePassword checks if a password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// validateUsername checks the username format
func (s *AuthService) validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters long", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates an account with its role profile and issues a session
// token. The account and profile rows are written in one transaction.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !req.Role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}
	if err := s.validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RoleStudent:
		if req.FirstName == "" || req.LastName == "" {
			return nil, fmt.Errorf("%w: firstName and lastName are required for student accounts", apperrors.ErrValidationFailed)
		}
		if req.StudentID == "" {
			return nil, fmt.Errorf("%w: studentId is required for student accounts", apperrors.ErrValidationFailed)
		}
	case models.RoleEmployer:
		if req.CompanyName == "" {
			return nil, fmt.Errorf("%w: companyName is required for employer accounts", apperrors.ErrValidationFailed)
		}
		if req.Industry == "" {
			return nil, fmt.Errorf("%w: industry is required for employer accounts", apperrors.ErrValidationFailed)
		}
	}

	// Pre-checks give friendly errors; the unique constraints still back them
	// up under concurrent registration.
	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	exists, err = s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  req.Role,
		IsActive:  true,
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = &req.PhoneNumber
	}
	if req.Gender != "" {
		gender := models.GenderType(req.Gender)
		u.Gender = &gender
	}

	switch req.Role {
	case models.RoleStudent:
		exists, err := s.userRepo.StudentIDExists(ctx, req.StudentID)
		if err != nil {
			return nil, fmt.Errorf("error checking student identifier: %w", err)
		}
		if exists {
			return nil, apperrors.ErrStudentIDAlreadyExists
		}

		student := &models.Student{
			StudentID:   req.StudentID,
			Degree:      req.Degree,
			YearOfStudy: req.YearOfStudy,
		}
		if err := s.userRepo.RegisterStudent(ctx, u, student); err != nil {
			return nil, err
		}

	case models.RoleEmployer:
		employer := &models.Employer{
			CompanyName: req.CompanyName,
			Industry:    req.Industry,
		}
		if err := s.userRepo.RegisterEmployer(ctx, u, employer); err != nil {
			return nil, err
		}
	}

	return s.buildAuthResponse(ctx, u)
}

// Login authenticates by username or email and returns the account's session
// token. Repeated logins return the same token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		// The login field doubles as an email address
		u, err = s.userRepo.GetByEmail(ctx, req.Username)
		if err != nil {
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	if !u.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !pkgauth.CheckPassword(u.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(ctx, u)
}

// Logout discards the account's session token. It is idempotent.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.DeleteByUserID(ctx, userID)
}

// ChangePassword verifies the current password and stores a new hash. The
// session token stays valid; only the caller knows the new password.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(u.Password, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err := s.validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := pkgauth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// ForgotPassword emails a single-use reset link to the account behind the
// address. The token is signed against the current password hash, so it stops
// working the moment the password changes.
func (s *AuthService) ForgotPassword(ctx context.Context, address string) error {
	if err := s.validateEmail(address); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmail(ctx, address)
	if err != nil {
		return err
	}

	token, err := s.resetTokens.Generate(u.ID, u.Password)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	uid := pkgauth.EncodeUID(u.ID)
	resetURL := fmt.Sprintf("%s/reset-password/%s/%s", strings.TrimRight(s.frontendURL, "/"), uid, token)

	if err := s.email.SendPasswordResetEmail(u.Email, u.FirstName, resetURL); err != nil {
		logger.Error().Err(err).Int64("userID", u.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("error sending reset email: %w", err)
	}

	logger.Info().Int64("userID", u.ID).Msg("Sent password reset email")
	return nil
}

// ResetPasswordConfirm completes the reset flow: it verifies the uid/token
// pair, stores the new password hash and discards the session token so a
// possibly stolen credential cannot outlive the reset.
func (s *AuthService) ResetPasswordConfirm(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error {
	userID, err := pkgauth.DecodeUID(req.UID)
	if err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	if err := s.resetTokens.Verify(req.Token, u.ID, u.Password); err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}

	if err := s.validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := pkgauth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, u.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", u.ID).Msg("Failed to discard session token after reset")
	}

	logger.Info().Int64("userID", u.ID).Msg("Password reset completed")
	return nil
}

// buildAuthResponse issues (or re-uses) the account's session token
func (s *AuthService) buildAuthResponse(ctx context.Context, u *models.User) (*dto.AuthResponse, error) {
	candidate, err := pkgauth.GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	token, err := s.tokenRepo.GetOrCreate(ctx, u.ID, candidate)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.NewUserResponse(u),
		Token: dto.TokenResponse{
			Token:     token,
			TokenType: "Token",
		},
	}, nil
}
