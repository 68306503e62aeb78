// Package request holds the disclosure-request domain: the record shape as
// the backend reports it, derivation of the display status from the stored
// status plus the current instant, and stable filtering of derived rows.
package request

import (
	"strings"
	"time"
)

// RawStatus is the authoritative request state as persisted by the backend.
// "expired" and "pending" are never stored; they are derived at render time.
type RawStatus string

const (
	RawUnapproved RawStatus = "un_approved"
	RawApproved   RawStatus = "approve"
	RawRejected   RawStatus = "reject"
)

// DisplayStatus is the derived, non-persisted label shown to a user.
// The approve/rejected label asymmetry matches the deployed backend and is
// kept verbatim.
type DisplayStatus string

const (
	StatusPending  DisplayStatus = "pending"
	StatusExpired  DisplayStatus = "expired"
	StatusApproved DisplayStatus = "approve"
	StatusRejected DisplayStatus = "rejected"
)

// UnknownOrg is shown when the backend omits the requesting organization.
const UnknownOrg = "Unknown Org"

// DisclosureRequest is one organization's time-bounded ask for a single
// vault attribute of one user.
type DisclosureRequest struct {
	ID          string
	DataType    string
	RequestedBy string
	// CreatedAt is the source of truth for expiry. CreatedAtValid is false
	// when the backend timestamp could not be parsed.
	CreatedAt      time.Time
	CreatedAtValid bool
	UpdatedAt      time.Time
	// Duration is how long the user has to respond, counted from CreatedAt.
	// Sub-minute precision survives from the wire, where durations can be
	// fractional. Positive for well-formed records; tolerated otherwise.
	Duration  time.Duration
	RawStatus RawStatus
}

// Organization returns the requesting organization's display name.
func (r DisclosureRequest) Organization() string {
	if strings.TrimSpace(r.RequestedBy) == "" {
		return UnknownOrg
	}
	return r.RequestedBy
}

// Derivation is the result of deriving a display status at one instant.
type Derivation struct {
	Status           DisplayStatus
	Expired          bool
	RemainingMinutes int
	// Malformed flags records whose timestamp or duration was unusable.
	// Such records are degraded to expired rather than shown as actionable.
	Malformed bool
}

// Derive maps a request plus an explicit reference instant to its display
// status. It is pure and total: no clock reads, no I/O, no panics. Resolved
// requests (approve/reject) are terminal and immune to expiry; only
// un_approved requests derive expired or pending from CreatedAt + Duration.
// A status outside the contract renders as rejected, so an out-of-contract
// record is never shown as actionable.
func Derive(r DisclosureRequest, now time.Time) Derivation {
	switch r.RawStatus {
	case RawApproved:
		return Derivation{Status: StatusApproved}
	case RawUnapproved:
	default:
		return Derivation{Status: StatusRejected}
	}

	if !r.CreatedAtValid || r.Duration < 0 {
		return Derivation{Status: StatusExpired, Expired: true, Malformed: true}
	}

	expiresAt := r.CreatedAt.Add(r.Duration)
	if now.After(expiresAt) {
		return Derivation{Status: StatusExpired, Expired: true}
	}

	return Derivation{
		Status:           StatusPending,
		RemainingMinutes: remainingMinutes(expiresAt.Sub(now)),
	}
}

// remainingMinutes rounds a non-negative remainder up to whole minutes, so a
// request one second before its deadline still shows one minute left.
func remainingMinutes(left time.Duration) int {
	if left <= 0 {
		return 0
	}
	mins := int(left / time.Minute)
	if left%time.Minute != 0 {
		mins++
	}
	return mins
}

// Row pairs a request with its derivation at a single instant, so filtering
// and tab counts always agree with what is rendered.
type Row struct {
	Request DisclosureRequest
	Derived Derivation
}

// DeriveAll derives every request in order at the same instant.
func DeriveAll(reqs []DisclosureRequest, now time.Time) []Row {
	rows := make([]Row, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, Row{Request: r, Derived: Derive(r, now)})
	}
	return rows
}
