package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid phone", ErrInvalidPhone},
		{"incomplete code", ErrIncompleteCode},
		{"cooldown active", ErrCooldownActive},
		{"busy", ErrBusy},
		{"flow state", ErrFlowState},
		{"not authenticated", ErrNotAuthenticated},
		{"unauthorized", ErrUnauthorized},
		{"not found", ErrNotFound},
		{"insufficient points", ErrInsufficientPoints},
		{"invalid reward", ErrInvalidReward},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	withMessage := &UpstreamError{Status: 400, Message: "Invalid OTP"}
	if withMessage.Error() != "Invalid OTP" {
		t.Fatalf("expected server message, got %q", withMessage.Error())
	}

	bare := &UpstreamError{Status: 502}
	if bare.Error() != "loyalty api error: status 502" {
		t.Fatalf("unexpected fallback message: %q", bare.Error())
	}
}
