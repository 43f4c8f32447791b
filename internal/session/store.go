package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/pkg/auth"
)

// Repository persists sessions durably. Implementations receive the upstream
// token already sealed and return it sealed.
type Repository interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	SelectExpired(ctx context.Context, now time.Time, limit int) ([]string, error)
}

// ProfileSource is the subset of upstream operations the store needs to keep
// its cached member snapshot current.
type ProfileSource interface {
	Profile(ctx context.Context, token string) (*model.MemberProfile, error)
	UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) error
}

// Options tunes session lifetime and expiry notification.
type Options struct {
	// TTL bounds how long a session stays resolvable.
	TTL time.Duration
	// OnExpired fires at most once per session when an upstream 401 forces it out.
	OnExpired func(sessionID string)
	// Now overrides the clock in tests.
	Now func() time.Time
}

const defaultTTL = 24 * time.Hour

type state struct {
	session *model.Session
	profile *model.MemberProfile
	// invalidated marks a session already torn down by an upstream 401 so a
	// second racing 401 cannot notify twice.
	invalidated bool
}

// Store holds authenticated identities. Each session binds exactly one
// identity, member or admin, to an opaque upstream token. The durable copy
// keeps the token sealed; the in-memory copy carries it in the clear together
// with the cached profile snapshot.
type Store struct {
	repo     Repository
	upstream ProfileSource
	cipher   auth.TokenCipher
	opts     Options
	logger   *slog.Logger

	mu     sync.Mutex
	states map[string]*state
}

// NewStore creates a store over the given repository and upstream source.
func NewStore(repo Repository, upstream ProfileSource, cipher auth.TokenCipher, opts Options, logger *slog.Logger) *Store {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		repo:     repo,
		upstream: upstream,
		cipher:   cipher,
		opts:     opts,
		logger:   logger,
		states:   make(map[string]*state),
	}
}

// LoginMember persists a member session for the upstream token and caches the
// profile snapshot taken at verification time.
func (s *Store) LoginMember(ctx context.Context, token string, profile model.MemberProfile) (*model.Session, error) {
	session := &model.Session{
		ID:       uuid.NewString(),
		Kind:     model.SessionMember,
		Token:    token,
		MemberID: profile.ID,
		Phone:    profile.Phone,
	}
	return s.login(ctx, session, &profile)
}

// LoginAdmin persists an admin session for the upstream token.
func (s *Store) LoginAdmin(ctx context.Context, token string, admin model.AdminIdentity) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.NewString(),
		Kind:      model.SessionAdmin,
		Token:     token,
		AdminName: admin.Name,
		AdminRole: admin.Role,
	}
	return s.login(ctx, session, nil)
}

func (s *Store) login(ctx context.Context, session *model.Session, profile *model.MemberProfile) (*model.Session, error) {
	now := s.opts.Now()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.opts.TTL)

	sealed, err := s.cipher.Seal(session.Token)
	if err != nil {
		return nil, err
	}
	durable := *session
	durable.Token = sealed
	if err := s.repo.Save(ctx, &durable); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.states[session.ID] = &state{session: session, profile: profile}
	s.mu.Unlock()
	return session, nil
}

// Resolve returns the live session for the ID, reading through to the
// repository after a restart. Expired or invalidated sessions resolve to
// ErrNotAuthenticated.
func (s *Store) Resolve(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	if st, ok := s.states[id]; ok {
		defer s.mu.Unlock()
		if st.invalidated || st.session.Expired(s.opts.Now()) {
			return nil, domainErrors.ErrNotAuthenticated
		}
		return st.session, nil
	}
	s.mu.Unlock()

	durable, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotAuthenticated
		}
		return nil, err
	}
	if durable.Expired(s.opts.Now()) {
		return nil, domainErrors.ErrNotAuthenticated
	}
	token, err := s.cipher.Open(durable.Token)
	if err != nil {
		return nil, domainErrors.ErrNotAuthenticated
	}
	session := *durable
	session.Token = token

	s.mu.Lock()
	if st, ok := s.states[id]; ok {
		// Lost the race to another Resolve; keep the first copy.
		defer s.mu.Unlock()
		if st.invalidated {
			return nil, domainErrors.ErrNotAuthenticated
		}
		return st.session, nil
	}
	s.states[id] = &state{session: &session}
	s.mu.Unlock()
	return &session, nil
}

// Logout clears the session everywhere. It always succeeds: a failed durable
// delete is logged and the in-memory copy is discarded regardless.
func (s *Store) Logout(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete session", slog.String("session_id", id), slog.Any("error", err))
	}
}

// Profile returns the cached member snapshot, fetching one when the cache is
// cold after a restart.
func (s *Store) Profile(ctx context.Context, id string) (*model.MemberProfile, error) {
	s.mu.Lock()
	st, ok := s.states[id]
	if ok && !st.invalidated && st.profile != nil {
		profile := *st.profile
		s.mu.Unlock()
		return &profile, nil
	}
	s.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrNotAuthenticated
	}
	return s.FetchProfile(ctx, id)
}

// FetchProfile re-fetches the member snapshot from upstream and replaces the
// cached copy. A non-auth failure leaves the cached copy intact. An upstream
// 401 tears the session down exactly once and notifies the expiry hook.
func (s *Store) FetchProfile(ctx context.Context, id string) (*model.MemberProfile, error) {
	session, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.upstream.Profile(ctx, session.Token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			s.invalidate(ctx, id)
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	s.mu.Lock()
	if st, ok := s.states[id]; ok && !st.invalidated {
		st.profile = profile
	}
	s.mu.Unlock()
	snapshot := *profile
	return &snapshot, nil
}

// UpdateUser pushes the edit upstream and, on success, merges the fields into
// the cached snapshot without another round trip.
func (s *Store) UpdateUser(ctx context.Context, id string, update model.ProfileUpdate) (*model.MemberProfile, error) {
	session, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.upstream.UpdateProfile(ctx, session.Token, update); err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			s.invalidate(ctx, id)
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok || st.invalidated {
		return nil, domainErrors.ErrNotAuthenticated
	}
	if st.profile == nil {
		st.profile = &model.MemberProfile{ID: session.MemberID, Phone: session.Phone}
	}
	if update.Name != nil {
		st.profile.Name = *update.Name
	}
	if update.Email != nil {
		st.profile.Email = *update.Email
	}
	if update.DateOfBirth != nil {
		st.profile.DateOfBirth = *update.DateOfBirth
	}
	merged := *st.profile
	return &merged, nil
}

// invalidate tears the session down after an upstream 401. The tombstone left
// in the map guarantees at most one expiry notification even under concurrent
// fetches; Forget clears it later.
func (s *Store) invalidate(ctx context.Context, id string) {
	s.mu.Lock()
	st, ok := s.states[id]
	if ok && st.invalidated {
		s.mu.Unlock()
		return
	}
	if !ok {
		st = &state{session: &model.Session{ID: id}}
		s.states[id] = st
	}
	st.invalidated = true
	st.profile = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete session", slog.String("session_id", id), slog.Any("error", err))
	}
	s.logger.Info("session invalidated by upstream", slog.String("session_id", id))
	if s.opts.OnExpired != nil {
		s.opts.OnExpired(id)
	}
}

// Authenticated runs fn with the session's upstream token. An upstream 401
// surfaced by fn tears the session down exactly once, like FetchProfile does.
func (s *Store) Authenticated(ctx context.Context, id string, fn func(token string) error) error {
	session, err := s.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(session.Token); err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			s.invalidate(ctx, id)
		}
		return err
	}
	return nil
}

// Forget drops the in-memory state for a session whose durable row is already
// gone. The sweeper calls it after deleting expired rows.
func (s *Store) Forget(id string) {
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()
}

// ExpiredBefore selects up to limit durable sessions past their expiry.
func (s *Store) ExpiredBefore(ctx context.Context, now time.Time, limit int) ([]string, error) {
	return s.repo.SelectExpired(ctx, now, limit)
}

// Remove deletes one expired session durably and in memory.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Forget(id)
	return nil
}
