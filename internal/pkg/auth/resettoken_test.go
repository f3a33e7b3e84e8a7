package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResetTokens(exp time.Duration) *ResetTokenService {
	return NewResetTokenService(ResetTokenConfig{
		SecretKey: "test-secret",
		TokenExp:  exp,
		Issuer:    "test",
	})
}

func TestResetTokenRoundtrip(t *testing.T) {
	svc := newTestResetTokens(time.Hour)

	token, err := svc.Generate(42, "hash-a")
	require.NoError(t, err)

	assert.NoError(t, svc.Verify(token, 42, "hash-a"))
}

func TestResetTokenRejectsWrongAccount(t *testing.T) {
	svc := newTestResetTokens(time.Hour)

	token, err := svc.Generate(42, "hash-a")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(token, 43, "hash-a"), ErrInvalidToken)
}

func TestResetTokenDiesWithPasswordChange(t *testing.T) {
	svc := newTestResetTokens(time.Hour)

	token, err := svc.Generate(42, "hash-a")
	require.NoError(t, err)

	// a new password hash means a new signing key
	assert.ErrorIs(t, svc.Verify(token, 42, "hash-b"), ErrInvalidToken)
}

func TestResetTokenExpiry(t *testing.T) {
	svc := newTestResetTokens(-time.Minute)

	token, err := svc.Generate(42, "hash-a")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(token, 42, "hash-a"), ErrExpiredToken)
}

func TestResetTokenRejectsGarbage(t *testing.T) {
	svc := newTestResetTokens(time.Hour)
	assert.ErrorIs(t, svc.Verify("not.a.token", 42, "hash-a"), ErrInvalidToken)
}

func TestEncodeDecodeUID(t *testing.T) {
	for _, id := range []int64{1, 42, 9999999} {
		decoded, err := DecodeUID(EncodeUID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}

	_, err := DecodeUID("!!!")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// valid base64 but not a positive decimal id
	_, err = DecodeUID(EncodeUID(0))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
