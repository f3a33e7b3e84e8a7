package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Reset token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// ResetTokenConfig defines password reset token settings
type ResetTokenConfig struct {
	SecretKey string
	TokenExp  time.Duration
	Issuer    string
}

// ResetTokenService issues and verifies signed, time-limited password reset
// tokens. The signing key mixes the server secret with the account's current
// password hash, so changing the password invalidates every outstanding token.
type ResetTokenService struct {
	config ResetTokenConfig
}

// NewResetTokenService creates a new ResetTokenService
func NewResetTokenService(config ResetTokenConfig) *ResetTokenService {
	return &ResetTokenService{config: config}
}

func (s *ResetTokenService) signingKey(passwordHash string) []byte {
	return []byte(s.config.SecretKey + ":" + passwordHash)
}

// Generate mints a reset token for the given account.
func (s *ResetTokenService) Generate(userID int64, passwordHash string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExp)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.Issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey(passwordHash))
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}

	return signed, nil
}

// Verify checks a reset token against the account's current state.
func (s *ResetTokenService) Verify(tokenString string, userID int64, passwordHash string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey(passwordHash), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return ErrInvalidToken
	}

	if claims.Subject != strconv.FormatInt(userID, 10) {
		return ErrInvalidToken
	}

	return nil
}

// EncodeUID encodes an account id for use in password reset links.
func EncodeUID(userID int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(userID, 10)))
}

// DecodeUID decodes an account id from a password reset link.
func DecodeUID(encoded string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}

	return id, nil
}
