// Package clock converts host wall-clock time into instruction cycles
// and timer ticks at independent rates.
package clock

// FrameClock accumulates elapsed time and doles it out as whole
// cycles and timer ticks. Fractional remainders carry over, so the
// long-run rates hold regardless of frame jitter.
type FrameClock struct {
	cycleInterval float64 // seconds per instruction cycle
	timerInterval float64 // seconds per timer tick
	maxDelta      float64 // cap on elapsed time per advance

	cycleDebt float64
	timerDebt float64
}

// NewFrameClock creates a clock for the given instruction rate with
// the default timer rate and frame delta cap.
func NewFrameClock(cyclesPerSecond uint64) *FrameClock {
	cfg := DefaultRunConfig()
	cfg.CyclesPerSecond = cyclesPerSecond
	return NewFrameClockWithConfig(cfg)
}

// NewFrameClockWithConfig creates a clock from a RunConfig.
func NewFrameClockWithConfig(cfg *RunConfig) *FrameClock {
	return &FrameClock{
		cycleInterval: 1.0 / float64(cfg.CyclesPerSecond),
		timerInterval: 1.0 / float64(cfg.TimerHz),
		maxDelta:      cfg.MaxFrameDelta,
	}
}

// Advance consumes elapsed seconds and returns the number of
// instruction cycles and timer ticks now due. Elapsed time beyond the
// frame delta cap is discarded rather than turned into a burst.
func (c *FrameClock) Advance(elapsed float64) (cycles, ticks uint64) {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > c.maxDelta {
		elapsed = c.maxDelta
	}

	c.cycleDebt += elapsed
	for c.cycleDebt >= c.cycleInterval {
		c.cycleDebt -= c.cycleInterval
		cycles++
	}

	c.timerDebt += elapsed
	for c.timerDebt >= c.timerInterval {
		c.timerDebt -= c.timerInterval
		ticks++
	}

	return cycles, ticks
}

// Reset drops any accumulated debt.
func (c *FrameClock) Reset() {
	c.cycleDebt = 0
	c.timerDebt = 0
}
