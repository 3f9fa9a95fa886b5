package contract

import "time"

// Clock supplies the current time to fee resolution and mint timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

var _ Clock = SystemClock{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock returns a settable time. Test helper.
type FixedClock struct {
	T time.Time
}

var _ Clock = (*FixedClock)(nil)

func (c *FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }
