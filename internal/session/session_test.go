package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jargon-id/jargon/internal/errors"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"user_id": "u1"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestNewUsesExpiresIn(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New("opaque-token", 3600, PrincipalUser, "alice@example.com", now)

	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
	assert.True(t, s.Valid(now))
	assert.True(t, s.Valid(now.Add(59*time.Minute)))
	assert.False(t, s.Valid(now.Add(time.Hour)))
}

func TestNewFallsBackToJWTExp(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := now.Add(30 * time.Minute)

	s := New(signedToken(t, exp), 0, PrincipalUser, "", now)
	assert.WithinDuration(t, exp, s.ExpiresAt, time.Second)
}

func TestNewWithoutAnyExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(signedToken(t, time.Time{}), 0, PrincipalOrg, "", now)

	assert.True(t, s.ExpiresAt.IsZero())
	assert.True(t, s.Valid(now.Add(100*24*time.Hour)), "no advertised lifetime means the backend decides")
}

func TestBearer(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid session", func(t *testing.T) {
		s := New("tok", 60, PrincipalUser, "", now)
		got, err := s.Bearer(now)
		require.NoError(t, err)
		assert.Equal(t, "tok", got)
	})

	t.Run("empty session", func(t *testing.T) {
		var s Session
		_, err := s.Bearer(now)
		assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	})

	t.Run("expired session", func(t *testing.T) {
		s := New("tok", 60, PrincipalUser, "", now)
		_, err := s.Bearer(now.Add(2 * time.Minute))
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	})
}
