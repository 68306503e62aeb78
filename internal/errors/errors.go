// Package errors provides sentinel errors for the jargon client.
package errors

import "errors"

// Configuration and session errors
var (
	// ErrNotInitialized is returned when no jargon config exists yet.
	ErrNotInitialized = errors.New("jargon not initialized")

	// ErrNotLoggedIn is returned when an authenticated call is attempted
	// without a valid bearer credential.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionExpired is returned when the stored credential has expired.
	ErrSessionExpired = errors.New("session expired, log in again")
)

// Request errors
var (
	// ErrRequestNotFound is returned when a disclosure request id is unknown.
	ErrRequestNotFound = errors.New("request not found")

	// ErrDecisionInFlight is returned when a decision is already being
	// submitted for the same request id.
	ErrDecisionInFlight = errors.New("decision already in flight for this request")

	// ErrAlreadyResolved is returned when the backend reports the request
	// was resolved by another actor before this decision landed.
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrViewClosed is returned when an operation targets a dashboard view
	// that has been closed.
	ErrViewClosed = errors.New("dashboard view closed")
)

// Validation errors
var (
	// ErrNoDataTypes is returned when a disclosure ask names no attributes.
	ErrNoDataTypes = errors.New("at least one data type is required")

	// ErrUnknownDataType is returned for attribute types outside the catalogue.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrInvalidEmail is returned for an implausible requester email.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrMissingReason is returned when a disclosure ask has no description.
	ErrMissingReason = errors.New("a reason for the request is required")
)
