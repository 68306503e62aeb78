// Package session holds the bearer credential acquired at login. The
// credential is an explicit value passed into every request-issuing call,
// not an ambient global: acquired at login, persisted by the config layer
// between CLI invocations, cleared at logout or expiry.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jargon-id/jargon/internal/errors"
)

// Principal identifies which collection backend calls operate on.
type Principal string

const (
	PrincipalUser Principal = "user"
	PrincipalOrg  Principal = "org"
)

// Session is a bearer credential with an explicit lifetime.
type Session struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
	Email     string    `json:"email,omitempty"`
	// ExpiresAt is zero when the backend gave no lifetime and the token
	// carried no exp claim; such sessions are treated as valid until the
	// backend rejects them.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// New builds a session from a login response. expiresIn is the backend's
// advertised lifetime in seconds; when absent the token's JWT exp claim is
// used instead. The token is opaque to the client, so the claim is read
// without signature verification - the backend remains the authority.
func New(token string, expiresIn int, principal Principal, email string, now time.Time) Session {
	s := Session{
		Token:     token,
		Principal: principal,
		Email:     email,
	}
	if expiresIn > 0 {
		s.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second)
	} else if exp, ok := tokenExpiry(token); ok {
		s.ExpiresAt = exp
	}
	return s
}

// tokenExpiry extracts the exp claim from a JWT bearer token, if any.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Valid reports whether the credential can still be presented at the given
// instant. The instant is passed explicitly so callers stay deterministic.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(s.ExpiresAt)
}

// Bearer returns the token for the Authorization header, or an auth error
// when no valid credential exists. Calls must fail loudly rather than go
// out with a silently missing header.
func (s Session) Bearer(now time.Time) (string, error) {
	if s.Token == "" {
		return "", apperrors.ErrNotLoggedIn
	}
	if !s.Valid(now) {
		return "", apperrors.ErrSessionExpired
	}
	return s.Token, nil
}
