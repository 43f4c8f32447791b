package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/kashieternal/rewardsgate/internal/test"
)

func TestNewSessionSweeperDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSessionSweeper(&testhelpers.SweepFacadeStub{}, time.Second, time.Minute, 0, 0, logger)
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func TestSessionSweeperRemovesExpiredSessions(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.SweepFacadeStub{Batches: [][]string{{"a", "b"}}}
	sweeper := NewSessionSweeper(facade, 10*time.Millisecond, time.Minute, 2, 2, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Removed) == 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for session removal")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Removed) != 2 {
		t.Fatalf("expected both sessions removed, got %v", facade.Removed)
	}
	if facade.Sweeps == 0 {
		t.Fatal("expected login attempts swept on each tick")
	}
}

func TestSessionSweeperToleratesRemovalFailure(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.SweepFacadeStub{
		Batches: [][]string{{"a"}, {"b"}},
		RemoveFn: func(_ context.Context, id string) error {
			if id == "a" {
				return errors.New("db down")
			}
			return nil
		},
	}
	sweeper := NewSessionSweeper(facade, 5*time.Millisecond, time.Minute, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		done := len(facade.Removed) > 0
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting past failed removal")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sweeper.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Removed[0] != "b" {
		t.Fatalf("expected failed removal skipped, got %v", facade.Removed)
	}
}

func TestSessionSweeperStopBeforeStart(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSessionSweeper(&testhelpers.SweepFacadeStub{}, time.Second, time.Minute, 1, 1, logger)
	sweeper.Stop()
}
