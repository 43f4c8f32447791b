package test

import (
	"context"
	"sync/atomic"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// AuthenticatorStub simulates the upstream OTP operations used by login flows.
// Call counters are atomic so tests can assert on them across goroutines.
type AuthenticatorStub struct {
	SendFn   func(context.Context, string) error
	VerifyFn func(context.Context, string, string) (string, *model.MemberProfile, error)

	sendCalls   int32
	verifyCalls int32
}

// SendOTP delegates to the override or succeeds.
func (s *AuthenticatorStub) SendOTP(ctx context.Context, phone string) error {
	atomic.AddInt32(&s.sendCalls, 1)
	if s.SendFn != nil {
		return s.SendFn(ctx, phone)
	}
	return nil
}

// VerifyOTP delegates to the override or returns a default session.
func (s *AuthenticatorStub) VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error) {
	atomic.AddInt32(&s.verifyCalls, 1)
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, phone, code)
	}
	return "upstream-token", &model.MemberProfile{ID: "m-1", Phone: phone, Tier: model.TierEternal}, nil
}

// SendCalls returns how many OTP sends were issued.
func (s *AuthenticatorStub) SendCalls() int {
	return int(atomic.LoadInt32(&s.sendCalls))
}

// VerifyCalls returns how many verifications were issued.
func (s *AuthenticatorStub) VerifyCalls() int {
	return int(atomic.LoadInt32(&s.verifyCalls))
}
