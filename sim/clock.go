package sim

import "time"

// FixedClock decides when the fixed-rate stage runs. It grants at most one
// step per Advance and never banks more than one extra step, so a slow frame
// does not trigger a burst of catch-up steps.
type FixedClock struct {
	step time.Duration
	acc  time.Duration
}

func NewFixedClock(rate int) *FixedClock {
	if rate <= 0 {
		panic("sim: fixed rate must be positive")
	}
	return &FixedClock{step: time.Second / time.Duration(rate)}
}

func (c *FixedClock) Step() time.Duration {
	return c.step
}

// Advance adds dt and reports whether a fixed step is due.
func (c *FixedClock) Advance(dt time.Duration) bool {
	if dt > 0 {
		c.acc += dt
	}
	if c.acc < c.step {
		return false
	}
	c.acc = min(c.acc-c.step, c.step)
	return true
}
