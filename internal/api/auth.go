package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jargon-id/jargon/internal/session"
)

// SignupParams contains the account-creation fields the backend accepts.
type SignupParams struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name,omitempty"`
	Username     string `json:"username,omitempty"`
	PrimaryPhone string `json:"primary_phone,omitempty"`
}

// LoginParams are the login credentials.
type LoginParams struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	Message   string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Signup creates a new account. The backend sends the verification email.
func (c *Client) Signup(ctx context.Context, params SignupParams) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "create-user", "", params, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer session. The session lifetime
// comes from the backend's expiresIn, with the token's own expiry as
// fallback.
func (c *Client) Login(ctx context.Context, params LoginParams, principal session.Principal) (session.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "user_login", "", params, &resp); err != nil {
		return session.Session{}, err
	}
	if resp.Token == "" {
		return session.Session{}, fmt.Errorf("api: login response missing token")
	}

	email := params.Email
	return session.New(resp.Token, resp.ExpiresIn, principal, email, c.now()), nil
}

// VerifyEmail confirms an emailed verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	body := map[string]string{"token": token}
	if err := c.do(ctx, http.MethodPost, "verify_email", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ForgotPassword asks the backend to send a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "forgot-password", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
