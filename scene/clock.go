package scene

import "time"

// DefaultMaxStep bounds a single frame delta so a stall (window drag,
// breakpoint) doesn't teleport every streak off screen.
const DefaultMaxStep = float32(0.25)

// Clock measures wall-clock frame deltas. The simulation itself never reads
// time; it is handed the delta returned by Tick.
type Clock struct {
	// MaxStep clamps Tick's result; zero disables clamping.
	MaxStep float32

	now   func() time.Time
	start time.Time
	last  time.Time
}

func NewClock() *Clock {
	return newClockAt(time.Now)
}

func newClockAt(now func() time.Time) *Clock {
	t := now()
	return &Clock{MaxStep: DefaultMaxStep, now: now, start: t, last: t}
}

// Tick returns the seconds elapsed since the previous Tick (or since the
// clock was created).
func (c *Clock) Tick() float32 {
	t := c.now()
	dt := float32(t.Sub(c.last).Seconds())
	c.last = t
	if dt < 0 {
		dt = 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		dt = c.MaxStep
	}
	return dt
}

// Elapsed is the unclamped time between creation and the last Tick.
func (c *Clock) Elapsed() float32 {
	return float32(c.last.Sub(c.start).Seconds())
}
