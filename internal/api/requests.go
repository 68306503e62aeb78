package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jargon-id/jargon/internal/request"
	"github.com/jargon-id/jargon/internal/session"
)

// requestRecord mirrors one disclosure-request row as the backend sends it.
// The capitalized, spaced keys are the backend's wire format.
type requestRecord struct {
	DataType    string  `json:"Data Type"`
	Data        string  `json:"Data"`
	Idx         string  `json:"idx"`
	CreatedAt   string  `json:"Created At"`
	UpdatedAt   string  `json:"Updated At"`
	RequestedBy string  `json:"Requested By"`
	Status      string  `json:"status"`
	Duration    float64 `json:"Duration"`
}

// timestampLayouts are tried in order when parsing backend timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// toDomain converts a wire record, tolerating malformed fields: a record
// that cannot be trusted is still returned so the status engine can degrade
// it to expired instead of the whole list failing.
func (r requestRecord) toDomain() request.DisclosureRequest {
	created, createdOK := parseTimestamp(r.CreatedAt)
	updated, _ := parseTimestamp(r.UpdatedAt)

	return request.DisclosureRequest{
		ID:             r.Idx,
		DataType:       r.DataType,
		RequestedBy:    r.RequestedBy,
		CreatedAt:      created,
		CreatedAtValid: createdOK,
		UpdatedAt:      updated,
		// Wire durations can be fractional minutes; the fraction counts
		// toward the expiry instant.
		Duration:  time.Duration(r.Duration * float64(time.Minute)),
		RawStatus: request.RawStatus(r.Status),
	}
}

// UserRequestedData fetches the ordered disclosure requests for the
// authenticated principal. A backend "Not Found" means no requests yet.
func (c *Client) UserRequestedData(ctx context.Context, sess session.Session) ([]request.DisclosureRequest, error) {
	token, err := c.bearer(sess)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "get_user_requested_data", token, nil, &raw); err != nil {
		if apiErr, ok := err.(*Error); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	// Some backend builds answer {"detail": "Not Found"} with a 200 when the
	// principal has no requests yet.
	var notFound struct {
		Detail string `json:"detail"`
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &notFound); err == nil && notFound.Detail == "Not Found" {
			return nil, nil
		}
	}

	var records []requestRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("api: decode requested data: %w", err)
		}
	}

	reqs := make([]request.DisclosureRequest, 0, len(records))
	for i, rec := range records {
		domain := rec.toDomain()
		if domain.ID == "" {
			// The backend occasionally omits idx; fall back to position so
			// the row stays addressable within this fetch.
			domain.ID = positionalID(i)
		}
		reqs = append(reqs, domain)
	}
	return reqs, nil
}

func positionalID(i int) string {
	return "row-" + strconv.Itoa(i)
}

// Decision is a user's verdict on a disclosure request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type decisionBody struct {
	DataID string `json:"data_id"`
	Action string `json:"action"`
}

// SubmitDecision records an approve/reject verdict for one request id. Each
// submission carries a client-generated idempotency key so the backend can
// treat a repeated decision on an already-resolved request as a no-op.
func (c *Client) SubmitDecision(ctx context.Context, sess session.Session, requestID string, decision Decision) error {
	token, err := c.bearer(sess)
	if err != nil {
		return err
	}

	body := decisionBody{DataID: requestID, Action: string(decision)}
	return c.doWithHeaders(ctx, http.MethodPost, "approve_or_reject_data", token, body, nil, map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})
}
