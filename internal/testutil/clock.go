// Package testutil provides deterministic substitutes for time and ID
// sources in tests.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock frozen at a fixed instant.
//
// Passing its Now method wherever a clock function is accepted makes
// every timestamp in a run reproducible. Advance moves the instant
// forward explicitly; the clock never ticks on its own.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at the given instant.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set resets the clock to a specific instant. Used for test reuse.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
