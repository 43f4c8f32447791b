package login

import (
	"sync"
	"time"
)

// Cooldown is the resend countdown: a strictly decreasing per-second counter
// that enables the resend action when it reaches zero. The ticking goroutine
// stops itself at zero and must be stopped explicitly on flow teardown so no
// tick leaks after navigation away.
type Cooldown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
	interval  time.Duration
}

// NewCooldown creates a cooldown ticking at the given interval. The interval
// is one second in production; tests shorten it.
func NewCooldown(interval time.Duration) *Cooldown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Cooldown{interval: interval}
}

// Start resets the counter to the given number of seconds and (re)starts the
// tick loop. A previous run is stopped first.
func (c *Cooldown) Start(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	if seconds <= 0 {
		return
	}
	c.remaining = seconds
	c.stop = make(chan struct{})
	go c.run(c.stop)
}

func (c *Cooldown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.remaining > 0 {
				c.remaining--
			}
			done := c.remaining == 0
			if done && c.stop == stop {
				c.stop = nil
			}
			c.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Remaining returns the seconds left until resend is allowed.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether the countdown is still running.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}

// Stop halts the tick loop and zeroes the counter.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = 0
}

func (c *Cooldown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
