package test

import (
	"context"
	"sync"
	"time"
)

// SweepFacadeStub records sweeper activity for assertions.
type SweepFacadeStub struct {
	sync.Mutex

	// Batches are served one per dispatch tick; afterwards the stub returns none.
	Batches  [][]string
	RemoveFn func(context.Context, string) error
	SweptFn  func(time.Duration) int

	Removed  []string
	Sweeps   int
	batchIdx int
}

func (s *SweepFacadeStub) ExpiredSessions(ctx context.Context, now time.Time, limit int) ([]string, error) {
	s.Lock()
	defer s.Unlock()
	if s.batchIdx >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.batchIdx]
	s.batchIdx++
	return batch, nil
}

func (s *SweepFacadeStub) RemoveSession(ctx context.Context, id string) error {
	if s.RemoveFn != nil {
		if err := s.RemoveFn(ctx, id); err != nil {
			return err
		}
	}
	s.Lock()
	defer s.Unlock()
	s.Removed = append(s.Removed, id)
	return nil
}

func (s *SweepFacadeStub) SweepLoginAttempts(maxAge time.Duration) int {
	s.Lock()
	s.Sweeps++
	s.Unlock()
	if s.SweptFn != nil {
		return s.SweptFn(maxAge)
	}
	return 0
}
