package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jargon-id/jargon/internal/errors"
	"github.com/jargon-id/jargon/internal/session"
)

func testNow() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func testSession() session.Session {
	return session.New("test-token", 3600, session.PrincipalUser, "alice@example.com", testNow())
}

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL).
		WithHTTPClient(srv.Client()).
		WithRateLimit(1000, 1000).
		WithClock(testNow)
	return c, srv
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/user_login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice@example.com", body["email"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"token":     "issued-token",
				"expiresIn": 1800,
				"message":   "Login successful",
			})
		}))
		defer srv.Close()

		sess, err := c.Login(context.Background(), LoginParams{Email: "alice@example.com", Password: "pw"}, session.PrincipalUser)
		require.NoError(t, err)
		assert.Equal(t, "issued-token", sess.Token)
		assert.Equal(t, testNow().Add(30*time.Minute), sess.ExpiresAt)
		assert.Equal(t, session.PrincipalUser, sess.Principal)
	})

	t.Run("missing token", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "ok but no token"})
		}))
		defer srv.Close()

		_, err := c.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "pw"}, session.PrincipalUser)
		assert.ErrorContains(t, err, "missing token")
	})

	t.Run("backend error surfaces detail", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
		}))
		defer srv.Close()

		_, err := c.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "bad"}, session.PrincipalUser)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "invalid credentials", apiErr.Error())
	})
}

func TestAuthenticatedCallRequiresCredential(t *testing.T) {
	called := false
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	t.Run("no session", func(t *testing.T) {
		_, err := c.UserRequestedData(context.Background(), session.Session{})
		assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	})

	t.Run("expired session", func(t *testing.T) {
		expired := session.New("tok", 1, session.PrincipalUser, "", testNow().Add(-time.Hour))
		_, err := c.UserRequestedData(context.Background(), expired)
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	})

	assert.False(t, called, "no request may leave the client without a header")
}

func TestBearerHeaderIsSent(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := c.UserRequestedData(context.Background(), testSession())
	require.NoError(t, err)
}

func TestErrorMessageFallbacks(t *testing.T) {
	e := &Error{StatusCode: 500}
	assert.Equal(t, "backend returned status 500", e.Error())

	e.Message = "something went wrong"
	assert.Equal(t, "something went wrong", e.Error())

	e.Detail = "detail wins"
	assert.Equal(t, "detail wins", e.Error())

	assert.False(t, e.Conflict())
	assert.True(t, (&Error{StatusCode: http.StatusConflict}).Conflict())
}
