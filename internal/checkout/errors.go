package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no snapshot exists for a session ID
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrSessionTerminal is returned on any booking mutation of a session
	// that already holds confirmed reservations
	ErrSessionTerminal = errors.New("checkout session is already confirmed")

	// ErrResetRequired is returned when navigating a confirmed session;
	// the only way forward is to start a new booking
	ErrResetRequired = errors.New("checkout session is confirmed; start a new booking")

	// ErrSubmitInFlight is returned when a submission for the session is
	// already in flight
	ErrSubmitInFlight = errors.New("a submission for this session is already in flight")
)

// ValidationError reports a field or step-gate rule failure.
// It is always raised before any network call.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// SubmissionError wraps a booking backend failure. The session is left in its
// pre-submission state so the caller can retry without re-entering data.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "booking submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
