package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// RepositoryStub is an in-memory session repository with per-call overrides.
type RepositoryStub struct {
	SaveFn   func(context.Context, *model.Session) error
	GetFn    func(context.Context, string) (*model.Session, error)
	DeleteFn func(context.Context, string) error

	mu       sync.Mutex
	sessions map[string]model.Session
}

func (s *RepositoryStub) Save(ctx context.Context, session *model.Session) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, session)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = make(map[string]model.Session)
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *RepositoryStub) Get(ctx context.Context, id string) (*model.Session, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &session, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *RepositoryStub) SelectExpired(ctx context.Context, now time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, session := range s.sessions {
		if session.Expired(now) {
			ids = append(ids, id)
			if len(ids) == limit {
				break
			}
		}
	}
	return ids, nil
}

// Stored returns the durable copy of a session, when one exists.
func (s *RepositoryStub) Stored(id string) (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Len reports how many sessions are stored.
func (s *RepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ProfileSourceStub simulates the upstream profile endpoints.
type ProfileSourceStub struct {
	ProfileFn       func(context.Context, string) (*model.MemberProfile, error)
	UpdateProfileFn func(context.Context, string, model.ProfileUpdate) error

	profileCalls int32
	updateCalls  int32
}

func (s *ProfileSourceStub) Profile(ctx context.Context, token string) (*model.MemberProfile, error) {
	atomic.AddInt32(&s.profileCalls, 1)
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, token)
	}
	return &model.MemberProfile{ID: "m-1", Phone: "9876543210", Tier: model.TierEternal}, nil
}

func (s *ProfileSourceStub) UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) error {
	atomic.AddInt32(&s.updateCalls, 1)
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, token, update)
	}
	return nil
}

// ProfileCalls returns how many profile fetches were issued.
func (s *ProfileSourceStub) ProfileCalls() int {
	return int(atomic.LoadInt32(&s.profileCalls))
}

// UpdateCalls returns how many profile updates were issued.
func (s *ProfileSourceStub) UpdateCalls() int {
	return int(atomic.LoadInt32(&s.updateCalls))
}
