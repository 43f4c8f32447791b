package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	ExpiredSessions(ctx context.Context, now time.Time, limit int) ([]string, error)
	RemoveSession(ctx context.Context, id string) error
	SweepLoginAttempts(maxAge time.Duration) int
}

// SessionSweeper discards expired sessions and stale login attempts concurrently.
type SessionSweeper struct {
	facade        SweepFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	attemptMaxAge time.Duration
	logger        *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs the sweeper worker pool.
func NewSessionSweeper(facade SweepFacade, sweepInterval, attemptMaxAge time.Duration, batchSize, workers int, logger *slog.Logger) *SessionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SessionSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		attemptMaxAge: attemptMaxAge,
		logger:        logger,
		jobs:          make(chan string, batchSize*workers),
	}
}

// Start launches background sweeping.
func (p *SessionSweeper) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *SessionSweeper) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *SessionSweeper) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *SessionSweeper) fetchAndDispatch(ctx context.Context) {
	if dropped := p.facade.SweepLoginAttempts(p.attemptMaxAge); dropped > 0 {
		p.logger.Info("stale login attempts discarded", slog.Int("count", dropped))
	}

	ids, err := p.facade.ExpiredSessions(ctx, time.Now(), p.batchSize)
	if err != nil {
		p.logger.Error("fetch expired sessions failed", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- id:
		}
	}
}

func (p *SessionSweeper) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleSession(ctx, id)
		}
	}
}

func (p *SessionSweeper) handleSession(ctx context.Context, id string) {
	if err := p.facade.RemoveSession(ctx, id); err != nil {
		p.logger.Error("remove expired session failed", slog.String("session_id", id), slog.String("error", err.Error()))
		return
	}
	p.logger.Info("expired session removed", slog.String("session_id", id))
}
