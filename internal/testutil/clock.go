package testutil

import (
	"sync"
	"time"
)

// Epoch is the first session timestamp handed out in tests.
var Epoch = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

// Session returns the timestamp of the nth synchronisation run after Epoch,
// one hour apart.
func Session(n int) time.Time {
	return Epoch.Add(time.Duration(n) * time.Hour)
}

// SessionClock hands out deterministic, monotonic timestamps for tests.
//
// The first call to Next returns Epoch; each later call is one step after the
// previous one. Unlike time.Now it can be reset, so the same scenario replays
// with identical timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SessionClock struct {
	mu   sync.Mutex
	step time.Duration
	seq  int64
}

// NewSessionClock creates a clock advancing by step on every Next.
func NewSessionClock(step time.Duration) *SessionClock {
	return &SessionClock{step: step}
}

// Next returns the next timestamp and advances the clock.
func (c *SessionClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := Epoch.Add(time.Duration(c.seq) * c.step)
	c.seq++
	return t
}

// Now returns the timestamp last handed out by Next, or Epoch before the
// first call. It never advances the clock.
func (c *SessionClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == 0 {
		return Epoch
	}
	return Epoch.Add(time.Duration(c.seq-1) * c.step)
}

// Reset rewinds the clock so the next call to Next returns Epoch.
func (c *SessionClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
