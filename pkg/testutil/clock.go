package testutil

import "time"

// Clock is a manually advanced clock for backup timestamps
type Clock struct {
	now time.Time
}

// NewClock starts a clock at the given unix time
func NewClock(unix int64) *Clock {
	return &Clock{now: time.Unix(unix, 0)}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }
