package api

import (
	"context"
	"net/http"

	"github.com/jargon-id/jargon/internal/session"
	"github.com/jargon-id/jargon/internal/vault"
)

// SaveDataParams is one vault attribute write. The payload is encrypted by
// the backend contract before it ever reaches this client; we ship opaque
// ciphertext and its hash.
type SaveDataParams struct {
	UserID        string `json:"user_id,omitempty"`
	DataType      string `json:"datat_type"` // wire key is spelled this way server-side
	EncryptedData string `json:"encrypted_data"`
	DataHash      string `json:"data_hash"`
}

// SaveVaultData stores one identity attribute in the remote vault.
func (c *Client) SaveVaultData(ctx context.Context, sess session.Session, params SaveDataParams) (string, error) {
	token, err := c.bearer(sess)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "data_vault/save_data_vault", token, params, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ProfileParams carries the create-profile form fields.
type ProfileParams struct {
	Name         string `json:"name,omitempty"`
	Username     string `json:"username,omitempty"`
	PrimaryPhone string `json:"primary_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
}

// CreateProfile completes the signed-up user's profile.
func (c *Client) CreateProfile(ctx context.Context, sess session.Session, params ProfileParams) (string, error) {
	token, err := c.bearer(sess)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "create_user_profile", token, params, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type askBody struct {
	DataType    []string `json:"data_type"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Minutes     int      `json:"minutes"`
}

// RequestData files an organization's disclosure ask against a user,
// validating it locally before it goes to the wire.
func (c *Client) RequestData(ctx context.Context, sess session.Session, ask vault.Ask) (string, error) {
	token, err := c.bearer(sess)
	if err != nil {
		return "", err
	}

	normalized, err := ask.Validate()
	if err != nil {
		return "", err
	}

	body := askBody{
		DataType:    normalized.DataTypes,
		Email:       normalized.Email,
		Description: normalized.Description,
		Minutes:     normalized.Minutes,
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "request_data", token, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
