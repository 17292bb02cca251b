// Package core provides the timed execution driver.
// It wraps the emulator to pace it against a host clock.
package core

import (
	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/timing/clock"
)

// Stats holds runtime statistics for the driver.
type Stats struct {
	// Cycles is the number of instruction cycles executed.
	Cycles uint64
	// Frames is the number of host frames stepped.
	Frames uint64
	// TimerTicks is the number of timer ticks delivered.
	TimerTicks uint64
}

// Core paces an emulator. Interactive hosts feed it real frame times
// through StepFrame; headless runs drive it cycle by cycle, with
// timer ticks delivered at the configured cycle ratio.
type Core struct {
	emulator *emu.Emulator
	clock    *clock.FrameClock

	cyclesPerTick uint64

	stats  Stats
	halted bool
	exited bool
	err    error
}

// NewCore creates a new Core pacing the given emulator per the run
// config.
func NewCore(emulator *emu.Emulator, cfg *clock.RunConfig) *Core {
	cyclesPerTick := cfg.CyclesPerSecond / cfg.TimerHz
	if cyclesPerTick == 0 {
		cyclesPerTick = 1
	}

	return &Core{
		emulator:      emulator,
		clock:         clock.NewFrameClockWithConfig(cfg),
		cyclesPerTick: cyclesPerTick,
	}
}

// Emulator returns the wrapped emulator.
func (c *Core) Emulator() *emu.Emulator {
	return c.emulator
}

// StepFrame advances the machine by one host frame of elapsed
// seconds, running the cycles and timer ticks that became due.
func (c *Core) StepFrame(elapsed float64) error {
	if c.halted {
		return c.err
	}

	cycles, ticks := c.clock.Advance(elapsed)
	c.stats.Frames++

	for i := uint64(0); i < cycles; i++ {
		if !c.step() {
			return c.err
		}
	}
	for i := uint64(0); i < ticks; i++ {
		c.emulator.TickTimers()
		c.stats.TimerTicks++
	}

	return nil
}

// Tick executes one instruction cycle, delivering a timer tick every
// cyclesPerTick cycles.
func (c *Core) Tick() {
	if !c.step() {
		return
	}
	if c.stats.Cycles%c.cyclesPerTick == 0 {
		c.emulator.TickTimers()
		c.stats.TimerTicks++
	}
}

// step runs one instruction and records any halt. Returns false once
// the core is halted.
func (c *Core) step() bool {
	if c.halted {
		return false
	}

	result := c.emulator.Step()
	c.stats.Cycles++

	if result.Exited {
		c.halted = true
		c.exited = true
		return false
	}
	if result.Err != nil {
		c.halted = true
		c.err = result.Err
		return false
	}
	return true
}

// RunUntil runs cycles until the stop predicate holds, the program
// exits or faults, or maxCycles is reached. Zero maxCycles means no
// limit. The fault, if any, is returned.
func (c *Core) RunUntil(stop func(*emu.Emulator) bool, maxCycles uint64) error {
	for !c.halted {
		if maxCycles > 0 && c.stats.Cycles >= maxCycles {
			break
		}
		c.Tick()
		if stop != nil && stop(c.emulator) {
			break
		}
	}
	return c.err
}

// RunCycles executes the core for the specified number of cycles.
// Returns true if still running, false if halted.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles && !c.halted; i++ {
		c.Tick()
	}
	return !c.halted
}

// Halted returns true once the program has exited or faulted.
func (c *Core) Halted() bool {
	return c.halted
}

// Exited returns true if the program terminated via the exit opcode.
func (c *Core) Exited() bool {
	return c.exited
}

// Err returns the fault that halted the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Stats returns runtime statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// Reset clears the driver and the machine back to power-on state.
func (c *Core) Reset() {
	c.emulator.Reset()
	c.clock.Reset()
	c.stats = Stats{}
	c.halted = false
	c.exited = false
	c.err = nil
}
