package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhone rejects phone numbers that are not 10-digit Indian
	// mobile numbers before any upstream call is made.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrIncompleteCode rejects verification attempts with fewer than six digits.
	ErrIncompleteCode = errors.New("incomplete otp code")

	// ErrCooldownActive rejects resend requests while the countdown is running.
	ErrCooldownActive = errors.New("resend cooldown active")

	// ErrBusy rejects a submission while another call is already in flight.
	ErrBusy = errors.New("request already in flight")

	// ErrFlowState rejects an operation not permitted in the current login state.
	ErrFlowState = errors.New("operation not allowed in current state")

	// ErrNotAuthenticated signals that no session is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthorized signals that the upstream rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientPoints rejects a redemption the member cannot afford.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrInvalidReward rejects reward payloads missing required fields.
	ErrInvalidReward = errors.New("invalid reward")
)

// InsufficientPointsError carries the shortfall for a redemption the member
// cannot afford. It matches ErrInsufficientPoints under errors.Is.
type InsufficientPointsError struct {
	Shortfall int64
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("Need %d more points", e.Shortfall)
}

func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}

// UpstreamError carries a human-readable message returned by the loyalty API
// for a non-2xx response. The message is surfaced to the caller verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("loyalty api error: status %d", e.Status)
}
