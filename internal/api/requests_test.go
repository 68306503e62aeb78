package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jargon-id/jargon/internal/request"
)

func TestUserRequestedData(t *testing.T) {
	t.Run("decodes wire records", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/get_user_requested_data", r.URL.Path)
			w.Write([]byte(`[
				{"Data Type":"nin","idx":"r1","Created At":"2024-01-01T00:00:00Z","Updated At":"2024-01-01T00:00:00Z","Requested By":"Acme Bank","status":"un_approved","Duration":30},
				{"Data Type":"bvn","idx":"r2","Created At":"2024-01-01T00:05:00Z","Requested By":"","status":"approve","Duration":60}
			]`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err)
		require.Len(t, reqs, 2)

		assert.Equal(t, "r1", reqs[0].ID)
		assert.Equal(t, "nin", reqs[0].DataType)
		assert.Equal(t, "Acme Bank", reqs[0].RequestedBy)
		assert.True(t, reqs[0].CreatedAtValid)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), reqs[0].CreatedAt)
		assert.Equal(t, 30*time.Minute, reqs[0].Duration)
		assert.Equal(t, request.RawUnapproved, reqs[0].RawStatus)

		assert.Equal(t, request.RawApproved, reqs[1].RawStatus)
		assert.Equal(t, request.UnknownOrg, reqs[1].Organization())
	})

	t.Run("malformed timestamp degrades one record only", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"idx":"bad","Created At":"yesterday-ish","status":"un_approved","Duration":30},
				{"idx":"ok","Created At":"2024-01-01T00:00:00Z","status":"un_approved","Duration":30}
			]`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err, "one bad record must not abort the list")
		require.Len(t, reqs, 2)

		assert.False(t, reqs[0].CreatedAtValid)
		assert.True(t, reqs[1].CreatedAtValid)

		now := time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC)
		bad := request.Derive(reqs[0], now)
		assert.Equal(t, request.StatusExpired, bad.Status)
		assert.True(t, bad.Malformed)

		good := request.Derive(reqs[1], now)
		assert.Equal(t, request.StatusPending, good.Status)
	})

	t.Run("fractional duration keeps its fraction", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"idx":"r1","Created At":"2024-01-01T00:00:00Z","status":"un_approved","Duration":0.5}]`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, 30*time.Second, reqs[0].Duration)

		// Half a minute means expiry 30 seconds after creation, not at it.
		created := reqs[0].CreatedAt
		assert.Equal(t, request.StatusPending, request.Derive(reqs[0], created.Add(29*time.Second)).Status)
		assert.Equal(t, request.StatusExpired, request.Derive(reqs[0], created.Add(31*time.Second)).Status)
	})

	t.Run("missing idx falls back to position", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"Created At":"2024-01-01T00:00:00Z","status":"un_approved","Duration":5}]`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, "row-0", reqs[0].ID)
	})

	t.Run("not found detail means empty list", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"detail":"Not Found"}`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err)
		assert.Empty(t, reqs)
	})

	t.Run("http 404 means empty list", func(t *testing.T) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))
		}))
		defer srv.Close()

		reqs, err := c.UserRequestedData(context.Background(), testSession())
		require.NoError(t, err)
		assert.Empty(t, reqs)
	})
}

func TestSubmitDecision(t *testing.T) {
	var got decisionBody
	var idempotencyKeys []string

	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/approve_or_reject_data", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		idempotencyKeys = append(idempotencyKeys, r.Header.Get("Idempotency-Key"))
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	sess := testSession()
	require.NoError(t, c.SubmitDecision(context.Background(), sess, "r1", DecisionApprove))
	assert.Equal(t, decisionBody{DataID: "r1", Action: "approve"}, got)

	require.NoError(t, c.SubmitDecision(context.Background(), sess, "r1", DecisionReject))
	assert.Equal(t, "reject", got.Action)

	require.Len(t, idempotencyKeys, 2)
	assert.NotEmpty(t, idempotencyKeys[0])
	assert.NotEqual(t, idempotencyKeys[0], idempotencyKeys[1], "each submission gets its own key")
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00.123456Z",
		"2024-01-01T00:00:00",
		"2024-01-01 00:00:00",
	} {
		_, ok := parseTimestamp(s)
		assert.True(t, ok, s)
	}

	_, ok := parseTimestamp("01/01/2024")
	assert.False(t, ok)
}
