package login

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	testhelpers "github.com/kashieternal/rewardsgate/internal/test"
)

func TestSubmitPhoneRejectsInvalidNumbers(t *testing.T) {
	cases := []struct {
		name  string
		phone string
	}{
		{"too short", "98765"},
		{"starts below 6", "1876543210"},
		{"letters", "98765efghi"},
		{"empty", ""},
		{"with country code", "+919876543210"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &testhelpers.AuthenticatorStub{}
			flow := NewFlow(auth, Options{})
			defer flow.Close()

			if err := flow.SubmitPhone(context.Background(), tc.phone); !errors.Is(err, domainErrors.ErrInvalidPhone) {
				t.Fatalf("expected ErrInvalidPhone, got %v", err)
			}
			if auth.SendCalls() != 0 {
				t.Fatalf("expected no network call, got %d", auth.SendCalls())
			}
			if flow.State() != StatePhoneEntry {
				t.Fatalf("expected PhoneEntry, got %s", flow.State())
			}
		})
	}
}

func TestSubmitPhoneStartsOTPEntry(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{TickInterval: time.Hour})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow.State() != StateOTPEntry {
		t.Fatalf("expected OTPEntry, got %s", flow.State())
	}
	if flow.Phone() != "9876543210" {
		t.Fatalf("unexpected phone: %q", flow.Phone())
	}
	if got := flow.CooldownRemaining(); got != 60 {
		t.Fatalf("expected 60s cooldown, got %d", got)
	}
	if auth.SendCalls() != 1 {
		t.Fatalf("expected one send call, got %d", auth.SendCalls())
	}
}

func TestSubmitPhoneUpstreamFailureKeepsState(t *testing.T) {
	upstreamErr := &domainErrors.UpstreamError{Status: 500, Message: "Failed to send OTP"}
	auth := &testhelpers.AuthenticatorStub{SendFn: func(context.Context, string) error { return upstreamErr }}
	flow := NewFlow(auth, Options{})
	defer flow.Close()

	err := flow.SubmitPhone(context.Background(), "9876543210")
	if !errors.Is(err, error(upstreamErr)) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if flow.State() != StatePhoneEntry {
		t.Fatalf("expected to stay in PhoneEntry, got %s", flow.State())
	}
	if flow.LastError() == nil {
		t.Fatal("expected surfaced error")
	}
	if flow.CooldownRemaining() != 0 {
		t.Fatal("cooldown must not start on failure")
	}
}

func TestSequentialDigitsTriggerSingleAutoVerify(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	done := make(chan Result, 2)
	flow := NewFlow(auth, Options{
		VerifyDebounce:  2 * time.Millisecond,
		TickInterval:    time.Hour,
		OnAuthenticated: func(r Result) { done <- r },
	})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}
	code := "123456"
	for i := 0; i < CodeLength; i++ {
		if err := flow.EnterDigit(i, code[i]); err != nil {
			t.Fatalf("enter digit %d: %v", i, err)
		}
	}

	select {
	case result := <-done:
		if result.Token != "upstream-token" {
			t.Fatalf("unexpected token: %q", result.Token)
		}
	case <-time.After(time.Second):
		t.Fatal("auto verification did not fire")
	}

	// Settle long enough for a hypothetical duplicate timer.
	time.Sleep(20 * time.Millisecond)
	if auth.VerifyCalls() != 1 {
		t.Fatalf("expected exactly one verify call, got %d", auth.VerifyCalls())
	}
	if flow.State() != StateAuthenticated {
		t.Fatalf("expected Authenticated, got %s", flow.State())
	}
}

func TestFailedVerifyClearsSlotsAndRefocuses(t *testing.T) {
	invalid := &domainErrors.UpstreamError{Status: 400, Message: "Invalid OTP"}
	auth := &testhelpers.AuthenticatorStub{
		VerifyFn: func(context.Context, string, string) (string, *model.MemberProfile, error) {
			return "", nil, invalid
		},
	}
	failures := make(chan error, 1)
	flow := NewFlow(auth, Options{
		VerifyDebounce: 2 * time.Millisecond,
		TickInterval:   time.Hour,
		OnError:        func(err error) { failures <- err },
	})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}
	for i, d := range []byte("123456") {
		if err := flow.EnterDigit(i, d); err != nil {
			t.Fatalf("enter digit %d: %v", i, err)
		}
	}

	select {
	case err := <-failures:
		if err.Error() != "Invalid OTP" {
			t.Fatalf("unexpected error surfaced: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("verification failure was not surfaced")
	}

	if flow.State() != StateOTPEntry {
		t.Fatalf("expected to stay in OTPEntry, got %s", flow.State())
	}
	if flow.Code() != "" {
		t.Fatalf("expected all slots cleared, got %q", flow.Code())
	}
	if flow.Focus() != 0 {
		t.Fatalf("expected focus back on first slot, got %d", flow.Focus())
	}
}

func TestVerifyRejectsIncompleteCode(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{TickInterval: time.Hour})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}
	if _, err := flow.Verify(context.Background(), "12345"); !errors.Is(err, domainErrors.ErrIncompleteCode) {
		t.Fatalf("expected ErrIncompleteCode, got %v", err)
	}
	if auth.VerifyCalls() != 0 {
		t.Fatalf("expected no verify call, got %d", auth.VerifyCalls())
	}
}

func TestResendGatedByCooldown(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{ResendCooldown: 2, TickInterval: 2 * time.Millisecond})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}
	if err := flow.Resend(context.Background()); !errors.Is(err, domainErrors.ErrCooldownActive) {
		t.Fatalf("expected ErrCooldownActive, got %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for flow.CooldownRemaining() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if flow.CooldownRemaining() != 0 {
		t.Fatal("cooldown never reached zero")
	}

	if err := flow.Resend(context.Background()); err != nil {
		t.Fatalf("expected resend to succeed at zero, got %v", err)
	}
	if auth.SendCalls() != 2 {
		t.Fatalf("expected two send calls, got %d", auth.SendCalls())
	}
	if flow.CooldownRemaining() != 2 {
		t.Fatalf("expected cooldown restarted, got %d", flow.CooldownRemaining())
	}
}

func TestChangeNumberReturnsToPhoneEntry(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{TickInterval: time.Hour})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}
	_ = flow.EnterDigit(0, '1')

	if err := flow.ChangeNumber(); err != nil {
		t.Fatalf("change number: %v", err)
	}
	if flow.State() != StatePhoneEntry {
		t.Fatalf("expected PhoneEntry, got %s", flow.State())
	}
	if flow.Phone() != "" || flow.Code() != "" {
		t.Fatal("expected phone and code discarded")
	}
	if flow.CooldownRemaining() != 0 {
		t.Fatal("expected cooldown stopped")
	}
}

func TestBusyFlagSerializesCalls(t *testing.T) {
	release := make(chan struct{})
	auth := &testhelpers.AuthenticatorStub{
		VerifyFn: func(context.Context, string, string) (string, *model.MemberProfile, error) {
			<-release
			return "upstream-token", &model.MemberProfile{}, nil
		},
	}
	flow := NewFlow(auth, Options{TickInterval: time.Hour})
	defer flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); err != nil {
		t.Fatalf("submit phone: %v", err)
	}

	verifyErr := make(chan error, 1)
	go func() {
		_, err := flow.Verify(context.Background(), "123456")
		verifyErr <- err
	}()

	// Wait for the first verify to take the busy flag.
	deadline := time.Now().Add(time.Second)
	for auth.VerifyCalls() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if auth.VerifyCalls() != 1 {
		t.Fatal("first verify never started")
	}

	if _, err := flow.Verify(context.Background(), "123456"); !errors.Is(err, domainErrors.ErrBusy) {
		t.Fatalf("expected ErrBusy for duplicate submission, got %v", err)
	}

	close(release)
	if err := <-verifyErr; err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
}

func TestOperationsRejectedOutsideOTPEntry(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{TickInterval: time.Hour})
	defer flow.Close()

	if err := flow.EnterDigit(0, '1'); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected ErrFlowState for digit in PhoneEntry, got %v", err)
	}
	if _, err := flow.Verify(context.Background(), "123456"); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected ErrFlowState for verify in PhoneEntry, got %v", err)
	}
	if err := flow.Resend(context.Background()); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected ErrFlowState for resend in PhoneEntry, got %v", err)
	}
}

func TestClosedFlowRejectsEverything(t *testing.T) {
	auth := &testhelpers.AuthenticatorStub{}
	flow := NewFlow(auth, Options{})
	flow.Close()

	if err := flow.SubmitPhone(context.Background(), "9876543210"); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected ErrFlowState after close, got %v", err)
	}
}
