// Package compliance provides the assembled program corpus that
// validates interpreter behavior end to end.
package compliance

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/c8lab/c8sim/asm"
	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/timing/clock"
	"github.com/c8lab/c8sim/timing/core"
)

// Result holds the outcome of a single program run.
type Result struct {
	// Name identifies the program
	Name string

	// Description explains what the program exercises
	Description string

	// Cycles is the number of instruction cycles executed
	Cycles uint64

	// TimerTicks is the number of timer ticks delivered during the run
	TimerTicks uint64

	// Exited is true when the program reached its exit opcode
	Exited bool

	// Err is the fault that stopped the run, if any. A run that just
	// hit its cycle bound has no fault and Exited false.
	Err error

	// Regs is the register file contents after the run
	Regs [emu.NumRegs]uint8

	// Index is the index register after the run
	Index uint16

	// LitPixels is the number of lit display pixels after the run
	LitPixels int

	// SoundActive reports whether the sound timer was still running
	SoundActive bool

	// WallTime is the host time the run took
	WallTime time.Duration
}

// Program defines a single corpus program.
type Program struct {
	// Name identifies the program
	Name string

	// Description explains what the program exercises
	Description string

	// Source is CHIP-8 assembly text, assembled at run time
	Source string

	// Quirks selects the behavior profile the program assumes
	Quirks emu.Quirks

	// Rand, when set, replaces the random byte source so RND results
	// are fixed
	Rand func() byte

	// Setup prepares machine state after the image is loaded
	// (held keys, preloaded memory)
	Setup func(e *emu.Emulator)

	// MaxCycles bounds the run. Zero uses the harness default.
	MaxCycles uint64

	// WantRegs lists register values to verify after the run
	WantRegs map[uint8]uint8

	// WantLit is the expected number of lit display pixels
	WantLit int

	// WantSound is the expected sound timer state after the run
	WantSound bool
}

// HarnessConfig configures the corpus harness.
type HarnessConfig struct {
	// RunConfig sets the pacing for each run. Nil uses the defaults.
	RunConfig *clock.RunConfig

	// MaxCycles bounds each run unless the program sets its own
	MaxCycles uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose prints a line per program as it runs
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		RunConfig: clock.DefaultRunConfig(),
		MaxCycles: 100000,
		Output:    os.Stdout,
		Verbose:   false,
	}
}

// Harness runs corpus programs and reports results.
type Harness struct {
	config   HarnessConfig
	programs []Program
}

// NewHarness creates a new corpus harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.RunConfig == nil {
		config.RunConfig = clock.DefaultRunConfig()
	}
	return &Harness{
		config:   config,
		programs: []Program{},
	}
}

// AddProgram adds a program to the harness.
func (h *Harness) AddProgram(p Program) {
	h.programs = append(h.programs, p)
}

// AddPrograms adds multiple programs to the harness.
func (h *Harness) AddPrograms(programs []Program) {
	h.programs = append(h.programs, programs...)
}

// RunAll executes all programs and returns results.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.programs))

	for _, p := range h.programs {
		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "running %s\n", p.Name)
		}
		results = append(results, h.runProgram(p))
	}

	return results
}

// runProgram assembles one program, runs it headless and captures the
// final machine state.
func (h *Harness) runProgram(p Program) Result {
	result := Result{Name: p.Name, Description: p.Description}

	image, err := asm.New(emu.LoadAddress).Assemble(p.Source)
	if err != nil {
		result.Err = fmt.Errorf("failed to assemble %s: %w", p.Name, err)
		return result
	}

	opts := []emu.EmulatorOption{emu.WithQuirks(p.Quirks)}
	if p.Rand != nil {
		opts = append(opts, emu.WithRandSource(p.Rand))
	}
	emulator := emu.NewEmulator(opts...)

	if err := emulator.LoadProgram(image); err != nil {
		result.Err = fmt.Errorf("failed to load %s: %w", p.Name, err)
		return result
	}
	if p.Setup != nil {
		p.Setup(emulator)
	}

	maxCycles := p.MaxCycles
	if maxCycles == 0 {
		maxCycles = h.config.MaxCycles
	}

	c := core.NewCore(emulator, h.config.RunConfig)

	start := time.Now()
	runErr := c.RunUntil(nil, maxCycles)
	result.WallTime = time.Since(start)

	stats := c.Stats()
	result.Cycles = stats.Cycles
	result.TimerTicks = stats.TimerTicks
	result.Exited = c.Exited()
	result.Err = runErr
	result.Regs = emulator.RegFile().V
	result.Index = emulator.RegFile().I
	result.LitPixels = emulator.Display().LitCount()
	result.SoundActive = emulator.SoundActive()

	return result
}

// PrintResults outputs run results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== Compliance Corpus Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Program: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		if r.Err != nil {
			_, _ = fmt.Fprintf(h.config.Output, "  Fault: %v\n", r.Err)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Exited:      %v\n", r.Exited)
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles:      %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Timer Ticks: %d\n", r.TimerTicks)
		_, _ = fmt.Fprintf(h.config.Output, "  Lit Pixels:  %d\n", r.LitPixels)
		_, _ = fmt.Fprintf(h.config.Output, "  Index:       0x%03X\n", r.Index)
		_, _ = fmt.Fprintf(h.config.Output, "  Sound:       %v\n", r.SoundActive)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:   %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}
