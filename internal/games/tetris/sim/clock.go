package sim

import "time"

// GravityInterval is the fixed time between gravity ticks.
const GravityInterval = 500 * time.Millisecond

// Clock accumulates elapsed time and reports how many gravity ticks fired.
type Clock struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewClock returns a clock firing every interval.
func NewClock(interval time.Duration) *Clock {
	return &Clock{interval: interval}
}

// Advance adds dt and returns the number of intervals crossed.
// Negative deltas are ignored.
func (c *Clock) Advance(dt time.Duration) int {
	if dt <= 0 || c.interval <= 0 {
		return 0
	}
	c.elapsed += dt
	ticks := int(c.elapsed / c.interval)
	c.elapsed -= time.Duration(ticks) * c.interval
	return ticks
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.elapsed = 0
}
