// Package timer provides the per-question countdown.
//
// A Countdown is polled from the caller's event loop rather than firing on its own goroutine.
// Every Start or Cancel bumps a generation counter, and expiry is only reported for the
// generation that is still current, so a tick meant for an earlier question can never
// expire a later one.
package timer

import "time"

// Token identifies one run of the countdown.
type Token uint64

// Countdown is a cancellable, restartable countdown. It is not safe for concurrent use.
type Countdown struct {
	limit      time.Duration
	startedAt  time.Time
	generation Token
	running    bool
}

// New returns a stopped countdown. A non-positive limit disables expiry.
func New(limit time.Duration) *Countdown {
	return &Countdown{limit: limit}
}

// Start begins a fresh run at now, invalidating any previous run.
func (c *Countdown) Start(now time.Time) Token {
	c.generation++
	c.startedAt = now
	c.running = true
	return c.generation
}

// Cancel stops the current run. Pending expiries for it become no-ops.
func (c *Countdown) Cancel() {
	if c.running {
		c.generation++
	}
	c.running = false
}

// Running reports whether a run is active.
func (c *Countdown) Running() bool { return c.running }

// Elapsed returns the time spent in the current run, capped at the limit when one is set.
func (c *Countdown) Elapsed(now time.Time) time.Duration {
	if !c.running {
		return 0
	}
	d := now.Sub(c.startedAt)
	if d < 0 {
		return 0
	}
	if c.limit > 0 && d > c.limit {
		return c.limit
	}
	return d
}

// Remaining returns the time left in the current run, rounded up to whole seconds for display.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if !c.running || c.limit <= 0 {
		return 0
	}
	left := c.limit - c.Elapsed(now)
	if left <= 0 {
		return 0
	}
	return ((left + time.Second - 1) / time.Second) * time.Second
}

// Poll checks the run identified by token at now. It reports true exactly once, when that run
// is still current and its limit has passed; the run is then stopped.
func (c *Countdown) Poll(token Token, now time.Time) bool {
	if !c.running || token != c.generation || c.limit <= 0 {
		return false
	}
	if now.Sub(c.startedAt) < c.limit {
		return false
	}
	c.running = false
	c.generation++
	return true
}
