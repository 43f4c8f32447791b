package login

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	testhelpers "github.com/kashieternal/rewardsgate/internal/test"
)

func newTestRegistry() *Registry {
	return NewRegistry(func() *Flow {
		return NewFlow(&testhelpers.AuthenticatorStub{}, Options{TickInterval: time.Hour})
	})
}

func TestRegistryGetOrCreateReturnsSameFlow(t *testing.T) {
	registry := newTestRegistry()

	first := registry.GetOrCreate("9876543210")
	second := registry.GetOrCreate("9876543210")
	if first != second {
		t.Fatal("expected the same flow for the same phone")
	}
	if other := registry.GetOrCreate("8123456789"); other == first {
		t.Fatal("expected distinct flows for distinct phones")
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 live attempts, got %d", registry.Len())
	}
}

func TestRegistryGet(t *testing.T) {
	registry := newTestRegistry()

	if _, ok := registry.Get("9876543210"); ok {
		t.Fatal("expected no flow before creation")
	}
	created := registry.GetOrCreate("9876543210")
	got, ok := registry.Get("9876543210")
	if !ok || got != created {
		t.Fatal("expected the created flow back")
	}
}

func TestRegistryRemoveClosesFlow(t *testing.T) {
	registry := newTestRegistry()

	flow := registry.GetOrCreate("9876543210")
	registry.Remove("9876543210")

	if registry.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", registry.Len())
	}
	if err := flow.SubmitPhone(context.Background(), "9876543210"); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected removed flow to be closed, got %v", err)
	}
	// Removing an absent phone is a no-op.
	registry.Remove("9876543210")
}

func TestRegistrySweepDiscardsStaleAttempts(t *testing.T) {
	registry := newTestRegistry()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return current }

	stale := registry.GetOrCreate("9876543210")
	current = current.Add(10 * time.Minute)
	registry.GetOrCreate("8123456789")

	if removed := registry.Sweep(5 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", registry.Len())
	}
	if _, ok := registry.Get("9876543210"); ok {
		t.Fatal("expected stale attempt gone")
	}
	if err := stale.SubmitPhone(context.Background(), "9876543210"); !errors.Is(err, domainErrors.ErrFlowState) {
		t.Fatalf("expected swept flow to be closed, got %v", err)
	}

	// Touched entries survive subsequent sweeps.
	if removed := registry.Sweep(5 * time.Minute); removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}
}
