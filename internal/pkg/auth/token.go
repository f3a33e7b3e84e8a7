package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Token errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// tokenKeyBytes is the entropy of a session token; the stored key is its hex form.
const tokenKeyBytes = 20

// GenerateTokenKey mints a new opaque bearer token key.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExtractBearerToken extracts the token from an Authorization header value.
// Both "Token <key>" and "Bearer <key>" schemes are accepted, as is the bare
// key.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	for _, prefix := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(authHeader, prefix) {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
			if token == "" {
				return "", ErrInvalidFormat
			}
			return token, nil
		}
	}

	return authHeader, nil
}
