package login

import (
	"sync"
	"time"
)

// Registry holds in-flight login flows keyed by phone number. Attempts are
// transient and in-memory only: they disappear on success, explicit removal,
// or when the sweeper discards stale ones.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	factory func() *Flow
	now     func() time.Time
}

type registryEntry struct {
	flow    *Flow
	touched time.Time
}

// NewRegistry creates a registry producing flows from the given factory.
func NewRegistry(factory func() *Flow) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		factory: factory,
		now:     time.Now,
	}
}

// GetOrCreate returns the flow for the phone, creating one when absent.
func (r *Registry) GetOrCreate(phone string) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[phone]; ok {
		entry.touched = r.now()
		return entry.flow
	}
	flow := r.factory()
	r.entries[phone] = &registryEntry{flow: flow, touched: r.now()}
	return flow
}

// Get returns the flow for the phone when one exists.
func (r *Registry) Get(phone string) (*Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[phone]
	if !ok {
		return nil, false
	}
	entry.touched = r.now()
	return entry.flow, true
}

// Remove discards the flow for the phone and releases its timers.
func (r *Registry) Remove(phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[phone]; ok {
		entry.flow.Close()
		delete(r.entries, phone)
	}
}

// Sweep discards flows untouched for longer than maxAge and returns how many
// were removed.
func (r *Registry) Sweep(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxAge)
	removed := 0
	for phone, entry := range r.entries {
		if entry.touched.Before(cutoff) {
			entry.flow.Close()
			delete(r.entries, phone)
			removed++
		}
	}
	return removed
}

// Len reports the number of live attempts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
