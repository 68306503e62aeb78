// Package vault describes the identity attributes the platform can hold and
// validates disclosure asks before they are sent to the backend.
package vault

import (
	"regexp"
	"strings"

	apperrors "github.com/jargon-id/jargon/internal/errors"
)

// DataType is one identity attribute category in the vault.
type DataType struct {
	Value     string
	Label     string
	FullLabel string
}

// DataTypes is the platform catalogue. Values are the wire identifiers the
// backend expects; matching is case-insensitive by convention.
var DataTypes = []DataType{
	{Value: "nin", Label: "NIN", FullLabel: "National Identification Number"},
	{Value: "bvn", Label: "BVN", FullLabel: "Bank Verification Number"},
	{Value: "driver_license", Label: "Driver's License", FullLabel: "Driver's License"},
	{Value: "passport", Label: "Passport", FullLabel: "Passport Number"},
	{Value: "voter_card", Label: "Voter's Card", FullLabel: "Voter's Card (PVC)"},
}

// Lookup finds a catalogue entry by wire identifier.
func Lookup(value string) (DataType, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, dt := range DataTypes {
		if dt.Value == v {
			return dt, true
		}
	}
	return DataType{}, false
}

// Duration bounds for a disclosure ask, in minutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 1440
)

// ClampDuration forces a requested response window into the allowed range.
func ClampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return minutes
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Ask is an organization's disclosure request before submission.
type Ask struct {
	DataTypes   []string
	Email       string
	Description string
	Minutes     int
}

// Validate checks an ask the way the request form does: at least one known
// attribute, a plausible subject email, a reason, and a clamped duration.
// It returns the normalized ask ready for the wire.
func (a Ask) Validate() (Ask, error) {
	if len(a.DataTypes) == 0 {
		return Ask{}, apperrors.ErrNoDataTypes
	}
	normalized := make([]string, 0, len(a.DataTypes))
	for _, raw := range a.DataTypes {
		dt, ok := Lookup(raw)
		if !ok {
			return Ask{}, apperrors.ErrUnknownDataType
		}
		normalized = append(normalized, dt.Value)
	}

	if !emailPattern.MatchString(strings.TrimSpace(a.Email)) {
		return Ask{}, apperrors.ErrInvalidEmail
	}
	if strings.TrimSpace(a.Description) == "" {
		return Ask{}, apperrors.ErrMissingReason
	}

	return Ask{
		DataTypes:   normalized,
		Email:       strings.TrimSpace(a.Email),
		Description: strings.TrimSpace(a.Description),
		Minutes:     ClampDuration(a.Minutes),
	}, nil
}
