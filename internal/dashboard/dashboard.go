// Package dashboard owns the client-local view of the disclosure-request
// list: fetching it, deriving display statuses on every read, and
// submitting approve/reject decisions. All state changes flow through a
// refetch from the backend; the view never flips a status optimistically.
package dashboard

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/jargon-id/jargon/internal/api"
	apperrors "github.com/jargon-id/jargon/internal/errors"
	"github.com/jargon-id/jargon/internal/request"
	"github.com/jargon-id/jargon/internal/session"
)

// Backend is the slice of the API client the dashboard needs. api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	UserRequestedData(ctx context.Context, sess session.Session) ([]request.DisclosureRequest, error)
	SubmitDecision(ctx context.Context, sess session.Session, requestID string, decision api.Decision) error
}

// staleTTL bounds how long a previously fetched list may be served after
// fetches start failing. Stale-but-available beats empty.
const staleTTL = 15 * time.Minute

// staleCacheFile is the on-disk snapshot of last-good lists, stored next to
// the config so it survives between process runs.
const staleCacheFile = "requests_cache"

func init() {
	// Cached values must round-trip through the gob snapshot.
	gob.Register([]request.DisclosureRequest{})
}

// NewStaleCache builds the session-scoped store for last-good lists. One
// cache may back several views (user dashboard, org dashboard).
func NewStaleCache() *gocache.Cache {
	return gocache.New(staleTTL, 2*staleTTL)
}

// OpenStaleCache loads the lists persisted under dir, so a process started
// while the backend is down can still serve the last-good data within the
// TTL. A missing or unreadable snapshot yields an empty cache.
func OpenStaleCache(dir string) *gocache.Cache {
	c := NewStaleCache()
	if dir != "" {
		_ = c.LoadFile(filepath.Join(dir, staleCacheFile))
	}
	return c
}

// SaveStaleCache snapshots the cache under dir for the next process. Callers
// save after a successful refresh; entries keep their original expiry.
func SaveStaleCache(c *gocache.Cache, dir string) error {
	if dir == "" {
		return nil
	}
	return c.SaveFile(filepath.Join(dir, staleCacheFile))
}

// View is one dashboard's request list. It owns its cached list
// exclusively; mutations happen only via Refresh.
type View struct {
	backend Backend
	sess    session.Session
	stale   *gocache.Cache

	group singleflight.Group

	mu     sync.Mutex
	closed bool
	list   []request.DisclosureRequest
	loaded bool
	busy   map[string]struct{}
}

// NewView creates a dashboard view for the session's principal, seeded from
// the stale cache when a recent list is available.
func NewView(backend Backend, sess session.Session, stale *gocache.Cache) *View {
	v := &View{
		backend: backend,
		sess:    sess,
		stale:   stale,
		busy:    make(map[string]struct{}),
	}
	if stale != nil {
		if cached, ok := stale.Get(string(sess.Principal)); ok {
			if list, ok := cached.([]request.DisclosureRequest); ok {
				v.list = list
				v.loaded = true
			}
		}
	}
	return v
}

// Refresh fetches the authoritative list. Concurrent refreshes collapse
// into one backend call. On failure the previously cached list stays
// untouched and the error surfaces to the caller.
func (v *View) Refresh(ctx context.Context) error {
	_, err, _ := v.group.Do("refresh", func() (interface{}, error) {
		list, err := v.backend.UserRequestedData(ctx, v.sess)
		if err != nil {
			return nil, err
		}

		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed {
			// The view unmounted while the fetch was in flight; the result
			// is discarded.
			return nil, apperrors.ErrViewClosed
		}
		v.list = list
		v.loaded = true
		if v.stale != nil {
			v.stale.SetDefault(string(v.sess.Principal), list)
		}
		return nil, nil
	})
	return err
}

// Loaded reports whether the view holds any list (fresh or stale).
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Rows derives display statuses for the cached list at the given instant.
// Derivation is recomputed on every call; it is never cached across time.
func (v *View) Rows(now time.Time) []request.Row {
	v.mu.Lock()
	list := v.list
	v.mu.Unlock()
	return request.DeriveAll(list, now)
}

// Busy reports whether a decision for the request id is in flight.
func (v *View) Busy(requestID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.busy[requestID]
	return ok
}

// Decide submits an approve/reject verdict for one request id.
//
// At most one decision per id may be in flight; distinct ids proceed
// concurrently. On success the list is refetched so only the backend's
// confirmed rawStatus is ever displayed. On failure the busy mark clears
// and the cached list stays as it was; the caller re-triggers manually.
// A backend conflict (someone else resolved the request first) is
// non-fatal: it clears busy, refetches, and reports ErrAlreadyResolved.
// An id absent from the cached list fails with ErrRequestNotFound before
// anything is submitted.
func (v *View) Decide(ctx context.Context, requestID string, decision api.Decision) error {
	if err := v.markBusy(requestID); err != nil {
		return err
	}
	defer v.clearBusy(requestID)

	if !v.has(requestID) {
		return fmt.Errorf("%w: %s", apperrors.ErrRequestNotFound, requestID)
	}

	if err := v.backend.SubmitDecision(ctx, v.sess, requestID, decision); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Conflict() {
			// Another actor got there first. Refetch so the confirmed state
			// is shown instead of a verdict that never landed.
			_ = v.Refresh(ctx)
			return apperrors.ErrAlreadyResolved
		}
		return err
	}

	// Read-your-writes: the refetch is sequenced after the submission ack.
	return v.Refresh(ctx)
}

func (v *View) markBusy(requestID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return apperrors.ErrViewClosed
	}
	if _, inFlight := v.busy[requestID]; inFlight {
		return apperrors.ErrDecisionInFlight
	}
	v.busy[requestID] = struct{}{}
	return nil
}

func (v *View) has(requestID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.list {
		if r.ID == requestID {
			return true
		}
	}
	return false
}

func (v *View) clearBusy(requestID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.busy, requestID)
}

// Close marks the view unmounted. In-flight calls complete but their
// results are discarded; the cached list is no longer mutated.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
