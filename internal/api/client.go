// Package api is the HTTP client for the jargon backend. The backend owns
// all business logic - accounts, encryption, storage, expiry enforcement,
// state transitions - and this package only moves JSON across the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jargon-id/jargon/internal/session"
)

// Client talks to one backend base URL. Authenticated calls take the bearer
// credential explicitly; there is no ambient session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewClient creates a backend client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		now:     time.Now,
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithRateLimit overrides the client-side request limiter.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// WithClock overrides the clock used for credential checks. For tests.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Error is a structured backend error.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Conflict reports whether the backend rejected a mutation because the
// target was already resolved by another actor or device.
func (e *Error) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

// do performs one JSON request/response exchange. token is empty for
// unauthenticated endpoints. No retries: one user action, one call.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out interface{}) error {
	return c.doWithHeaders(ctx, method, endpoint, token, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, endpoint, token string, body, out interface{}, headers map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil && method != http.MethodGet {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// bearer resolves the credential for an authenticated call, failing with an
// auth error rather than sending a request without the header.
func (c *Client) bearer(sess session.Session) (string, error) {
	return sess.Bearer(c.now())
}
