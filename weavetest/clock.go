package weavetest

import (
	"sync"
	"time"
)

// Clock is a manually controlled time source. The zero value starts at the
// UNIX epoch.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock set to given time.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		return time.Unix(0, 0)
	}
	return c.now
}

// Set moves the clock to given time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by given duration.
func (c *Clock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}
