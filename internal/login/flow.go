package login

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/usecase"
)

// State is the login flow position.
type State int

const (
	StatePhoneEntry State = iota
	StateOTPEntry
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StatePhoneEntry:
		return "PHONE_ENTRY"
	case StateOTPEntry:
		return "OTP_ENTRY"
	case StateAuthenticated:
		return "AUTHENTICATED"
	}
	return "UNKNOWN"
}

// Authenticator is the subset of upstream operations the flow needs.
type Authenticator interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error)
}

// Result is the outcome of a successful verification.
type Result struct {
	Token   string
	Profile *model.MemberProfile
}

// Options tunes flow timing and hooks.
type Options struct {
	// ResendCooldown is the countdown in seconds started after every OTP send.
	ResendCooldown int
	// VerifyDebounce delays the automatic verification fired when the sixth
	// digit lands, mirroring the short settle the form uses.
	VerifyDebounce time.Duration
	// TickInterval is the cooldown granularity; one second in production.
	TickInterval time.Duration
	// OnAuthenticated receives the result of an automatic verification.
	OnAuthenticated func(Result)
	// OnError receives failures of an automatic verification.
	OnError func(error)
}

const (
	defaultResendCooldown = 60
	defaultVerifyDebounce = 100 * time.Millisecond
)

// Flow is the OTP login state machine:
//
//	PhoneEntry -> OTPEntry -> Authenticated
//
// with OTPEntry -> PhoneEntry on "change number" and OTPEntry -> OTPEntry on
// resend or failed verification. A busy flag keeps at most one send or verify
// call in flight; a failed network call leaves the state where it was.
type Flow struct {
	mu          sync.Mutex
	auth        Authenticator
	opts        Options
	state       State
	phone       string
	code        CodeInput
	cooldown    *Cooldown
	busy        bool
	closed      bool
	lastErr     error
	verifyTimer *time.Timer
}

// NewFlow creates a flow in the PhoneEntry state.
func NewFlow(auth Authenticator, opts Options) *Flow {
	if opts.ResendCooldown <= 0 {
		opts.ResendCooldown = defaultResendCooldown
	}
	if opts.VerifyDebounce <= 0 {
		opts.VerifyDebounce = defaultVerifyDebounce
	}
	return &Flow{
		auth:     auth,
		opts:     opts,
		state:    StatePhoneEntry,
		cooldown: NewCooldown(opts.TickInterval),
	}
}

// SubmitPhone validates the number and requests an OTP. Invalid numbers fail
// before any network call. On success the flow moves to OTPEntry and the
// resend cooldown starts.
func (f *Flow) SubmitPhone(ctx context.Context, phone string) error {
	f.mu.Lock()
	if f.closed || f.state != StatePhoneEntry {
		f.mu.Unlock()
		return domainErrors.ErrFlowState
	}
	if f.busy {
		f.mu.Unlock()
		return domainErrors.ErrBusy
	}
	if !usecase.ValidatePhone(phone) {
		f.lastErr = domainErrors.ErrInvalidPhone
		f.mu.Unlock()
		return domainErrors.ErrInvalidPhone
	}
	f.busy = true
	f.lastErr = nil
	f.mu.Unlock()

	err := f.auth.SendOTP(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.lastErr = err
		return err
	}
	f.phone = phone
	f.state = StateOTPEntry
	f.code.Clear()
	f.cooldown.Start(f.opts.ResendCooldown)
	return nil
}

// EnterDigit feeds one keystroke into the code input. Filling the sixth slot
// schedules exactly one automatic verification after the debounce.
func (f *Flow) EnterDigit(index int, value byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.state != StateOTPEntry {
		return domainErrors.ErrFlowState
	}

	complete := f.code.EnterDigit(index, value)
	if complete && !f.busy && f.verifyTimer == nil {
		f.verifyTimer = time.AfterFunc(f.opts.VerifyDebounce, f.autoVerify)
	}
	return nil
}

// Backspace handles deletion in the code input.
func (f *Flow) Backspace(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.state != StateOTPEntry {
		return domainErrors.ErrFlowState
	}
	f.code.Backspace(index)
	return nil
}

func (f *Flow) autoVerify() {
	f.mu.Lock()
	f.verifyTimer = nil
	code := f.code.String()
	f.mu.Unlock()

	result, err := f.Verify(context.Background(), code)
	if err != nil {
		if f.opts.OnError != nil {
			f.opts.OnError(err)
		}
		return
	}
	if f.opts.OnAuthenticated != nil {
		f.opts.OnAuthenticated(*result)
	}
}

// Verify exchanges the code for an upstream token. On failure all six slots
// are cleared, focus returns to the first one, and the flow stays in
// OTPEntry with the error surfaced.
func (f *Flow) Verify(ctx context.Context, code string) (*Result, error) {
	f.mu.Lock()
	if f.closed || f.state != StateOTPEntry {
		f.mu.Unlock()
		return nil, domainErrors.ErrFlowState
	}
	if f.busy {
		f.mu.Unlock()
		return nil, domainErrors.ErrBusy
	}
	if !usecase.ValidateCode(code) {
		f.lastErr = domainErrors.ErrIncompleteCode
		f.mu.Unlock()
		return nil, domainErrors.ErrIncompleteCode
	}
	f.busy = true
	f.lastErr = nil
	phone := f.phone
	f.mu.Unlock()

	token, profile, err := f.auth.VerifyOTP(ctx, phone, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.lastErr = err
		f.code.Clear()
		return nil, err
	}
	f.state = StateAuthenticated
	f.cooldown.Stop()
	return &Result{Token: token, Profile: profile}, nil
}

// Resend re-issues the OTP request. It is a no-op returning ErrCooldownActive
// while the countdown is above zero; at zero it restarts the full cooldown.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.closed || f.state != StateOTPEntry {
		f.mu.Unlock()
		return domainErrors.ErrFlowState
	}
	if f.cooldown.Active() {
		f.mu.Unlock()
		return domainErrors.ErrCooldownActive
	}
	if f.busy {
		f.mu.Unlock()
		return domainErrors.ErrBusy
	}
	f.busy = true
	phone := f.phone
	f.mu.Unlock()

	err := f.auth.SendOTP(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.lastErr = err
		return err
	}
	f.code.Clear()
	f.cooldown.Start(f.opts.ResendCooldown)
	return nil
}

// ChangeNumber returns to PhoneEntry, discarding the entered code and error.
func (f *Flow) ChangeNumber() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.state != StateOTPEntry {
		return domainErrors.ErrFlowState
	}
	f.state = StatePhoneEntry
	f.phone = ""
	f.lastErr = nil
	f.code.Clear()
	f.cooldown.Stop()
	return nil
}

// Close tears the flow down, stopping the cooldown tick and any pending
// automatic verification.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.verifyTimer != nil {
		f.verifyTimer.Stop()
		f.verifyTimer = nil
	}
	f.cooldown.Stop()
}

// State returns the current flow position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Phone returns the number the OTP was sent to.
func (f *Flow) Phone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone
}

// Focus returns the code slot that should receive the next keystroke.
func (f *Flow) Focus() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code.Focus()
}

// Code returns the digits entered so far.
func (f *Flow) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code.String()
}

// CooldownRemaining returns the seconds left until resend is allowed.
func (f *Flow) CooldownRemaining() int {
	return f.cooldown.Remaining()
}

// LastError returns the most recent surfaced failure, if any.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}
