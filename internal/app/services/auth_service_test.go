package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	pkgauth "github.com/campushire/campushire/internal/pkg/auth"
	"github.com/campushire/campushire/internal/pkg/apperrors"
)

func newAuthService(e *testEnv) *AuthService {
	resetTokens := pkgauth.NewResetTokenService(pkgauth.ResetTokenConfig{
		SecretKey: "test-secret",
		TokenExp:  time.Hour,
		Issuer:    "test",
	})
	return NewAuthService(e.users, e.tokens, resetTokens, e.email, "http://localhost:3000")
}

func studentRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  "secret123",
		Role:      models.RoleStudent,
		FirstName: "John",
		LastName:  "Doe",
		StudentID: "S100",
		Degree:    "BSc Computer Science",
	}
}

func TestRegisterStudent(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "jdoe", resp.User.Username)
	assert.Equal(t, "student", string(resp.User.Role))
	assert.NotEmpty(t, resp.Token.Token)
	assert.Equal(t, "Token", resp.Token.TokenType)

	u, err := e.users.GetByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.Password, "password must be stored hashed")

	student, err := e.users.GetStudentByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "S100", student.StudentID)

	_, err = e.users.GetEmployerByUserID(context.Background(), u.ID)
	assert.ErrorIs(t, err, apperrors.ErrEmployerProfileNotFound, "an account holds exactly one role profile")
}

func TestRegisterEmployer(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:    "acme",
		Email:       "hr@acme.example.com",
		Password:    "secret123",
		Role:        models.RoleEmployer,
		CompanyName: "Acme Inc",
		Industry:    "Tech",
	})
	require.NoError(t, err)
	assert.Equal(t, "employer", string(resp.User.Role))

	u, err := e.users.GetByUsername(context.Background(), "acme")
	require.NoError(t, err)
	employer, err := e.users.GetEmployerByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", employer.CompanyName)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *dto.RegisterRequest)
		wantErr error
	}{
		{"unknown role", func(r *dto.RegisterRequest) { r.Role = "admin" }, apperrors.ErrInvalidRole},
		{"short username", func(r *dto.RegisterRequest) { r.Username = "ab" }, apperrors.ErrValidationFailed},
		{"empty email", func(r *dto.RegisterRequest) { r.Email = "" }, apperrors.ErrValidationFailed},
		{"malformed email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, apperrors.ErrValidationFailed},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "abc1" }, apperrors.ErrInvalidPassword},
		{"password without digit", func(r *dto.RegisterRequest) { r.Password = "abcdefgh" }, apperrors.ErrInvalidPassword},
		{"password without letter", func(r *dto.RegisterRequest) { r.Password = "12345678" }, apperrors.ErrInvalidPassword},
		{"student without student id", func(r *dto.RegisterRequest) { r.StudentID = "" }, apperrors.ErrValidationFailed},
		{"student without first name", func(r *dto.RegisterRequest) { r.FirstName = "" }, apperrors.ErrValidationFailed},
		{"student without last name", func(r *dto.RegisterRequest) { r.LastName = "" }, apperrors.ErrValidationFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := studentRegisterRequest()
			tc.mutate(req)
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("employer without company name", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "acme",
			Email:    "hr@acme.example.com",
			Password: "secret123",
			Role:     models.RoleEmployer,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("employer without industry", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username:    "acme",
			Email:       "hr@acme.example.com",
			Password:    "secret123",
			Role:        models.RoleEmployer,
			CompanyName: "Acme Inc",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestRegisterDuplicates(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	_, err := svc.Register(ctx, studentRegisterRequest())
	require.NoError(t, err)

	t.Run("username taken", func(t *testing.T) {
		req := studentRegisterRequest()
		req.Email = "other@example.com"
		req.StudentID = "S101"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	})

	t.Run("email taken", func(t *testing.T) {
		req := studentRegisterRequest()
		req.Username = "other"
		req.StudentID = "S101"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("student id taken", func(t *testing.T) {
		req := studentRegisterRequest()
		req.Username = "other"
		req.Email = "other@example.com"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	registered, err := svc.Register(ctx, studentRegisterRequest())
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, registered.Token.Token, resp.Token.Token, "repeated logins return the same token")
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "jdoe@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, registered.Token.Token, resp.Token.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "wrong999"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		u, err := e.users.GetByUsername(ctx, "jdoe")
		require.NoError(t, err)
		u.IsActive = false
		defer func() { u.IsActive = true }()

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestLogoutInvalidatesToken(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	resp, err := svc.Register(ctx, studentRegisterRequest())
	require.NoError(t, err)

	u, err := e.users.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID))

	_, err = e.tokens.GetUserIDByToken(ctx, resp.Token.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	// logout is idempotent
	assert.NoError(t, svc.Logout(ctx, u.ID))

	// the next login issues a fresh token
	again, err := svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, resp.Token.Token, again.Token.Token)
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	resp, err := svc.Register(ctx, studentRegisterRequest())
	require.NoError(t, err)
	u, err := e.users.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{
			OldPassword: "wrong999",
			NewPassword: "fresh1234",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{
			OldPassword: "secret123",
			NewPassword: "short",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("success keeps session token", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{
			OldPassword: "secret123",
			NewPassword: "fresh1234",
		})
		require.NoError(t, err)

		userID, err := e.tokens.GetUserIDByToken(ctx, resp.Token.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, userID)

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "fresh1234"})
		assert.NoError(t, err)
	})
}

func TestForgotPasswordAndReset(t *testing.T) {
	e := newTestEnv()
	svc := newAuthService(e)
	ctx := context.Background()

	sessionToken, err := svc.Register(ctx, studentRegisterRequest())
	require.NoError(t, err)
	u, err := e.users.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	require.NoError(t, svc.ForgotPassword(ctx, "jdoe@example.com"))
	require.Len(t, e.email.resetURLs, 1)
	assert.Equal(t, "jdoe@example.com", e.email.sentTo[0])

	// the link carries .../reset-password/<uid>/<token>
	parts := strings.Split(e.email.resetURLs[0], "/")
	require.GreaterOrEqual(t, len(parts), 2)
	uid := parts[len(parts)-2]
	token := parts[len(parts)-1]

	decoded, err := pkgauth.DecodeUID(uid)
	require.NoError(t, err)
	assert.Equal(t, u.ID, decoded)

	t.Run("garbage uid", func(t *testing.T) {
		err := svc.ResetPasswordConfirm(ctx, &dto.ResetPasswordConfirmRequest{
			UID:         "!!!",
			Token:       token,
			NewPassword: "fresh1234",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		err := svc.ResetPasswordConfirm(ctx, &dto.ResetPasswordConfirmRequest{
			UID:         uid,
			Token:       token + "x",
			NewPassword: "fresh1234",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
	})

	t.Run("success discards session token", func(t *testing.T) {
		err := svc.ResetPasswordConfirm(ctx, &dto.ResetPasswordConfirmRequest{
			UID:         uid,
			Token:       token,
			NewPassword: "fresh1234",
		})
		require.NoError(t, err)

		_, err = e.tokens.GetUserIDByToken(ctx, sessionToken.Token.Token)
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

		_, err = svc.Login(ctx, &dto.LoginRequest{Username: "jdoe", Password: "fresh1234"})
		assert.NoError(t, err)
	})

	t.Run("token dies with the password change", func(t *testing.T) {
		err := svc.ResetPasswordConfirm(ctx, &dto.ResetPasswordConfirmRequest{
			UID:         uid,
			Token:       token,
			NewPassword: "another123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
	})
}
