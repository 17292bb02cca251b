// Package main provides the entry point for c8sim.
// c8sim is a timed CHIP-8 virtual machine interpreter.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/c8lab/c8sim/app"
	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/loader"
	"github.com/c8lab/c8sim/timing/clock"
	"github.com/c8lab/c8sim/timing/core"
)

var (
	quirksName = flag.String("quirks", "", "Quirks profile, original or modern (overrides the config file)")
	hz         = flag.Uint64("hz", 0, "Instruction rate in cycles per second (overrides the config file)")
	fps        = flag.Uint64("fps", 0, "Synthetic frame rate for headless runs (overrides the config file)")
	scale      = flag.Int("scale", 10, "Window size as a multiple of the 64x32 display")
	maxCycles  = flag.Uint64("max-cycles", 0, "Stop a headless run after this many cycles, 0 for no limit")
	headless   = flag.Bool("headless", false, "Run without a window and print the final machine state")
	configPath = flag.String("config", "", "Path to run configuration JSON file")
	trace      = flag.Bool("trace", false, "Log every executed instruction")
	seed       = flag.Int64("seed", 0, "Seed for the RND instruction, 0 for time-based")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8sim [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	romPath := flag.Arg(0)

	cfg, err := buildRunConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in run configuration: %v\n", err)
		os.Exit(1)
	}

	prog, err := loader.Load(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", romPath)
		fmt.Printf("Size: %d bytes\n", len(prog.Data))
		fmt.Printf("Quirks: %s\n", cfg.Quirks)
		fmt.Printf("Rate: %d cycles/s\n", cfg.CyclesPerSecond)
	}

	c, err := buildCore(prog, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing machine: %v\n", err)
		os.Exit(1)
	}

	if *headless {
		os.Exit(runHeadless(c, os.Stdout, prog, cfg.MaxCycles))
	}
	os.Exit(runWindowed(c, prog))
}

// buildRunConfig assembles the run configuration from the config file
// and flag overrides.
func buildRunConfig() (*clock.RunConfig, error) {
	cfg := clock.DefaultRunConfig()
	if *configPath != "" {
		loaded, err := clock.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *quirksName != "" {
		cfg.Quirks = *quirksName
	}
	if *hz != 0 {
		cfg.CyclesPerSecond = *hz
	}
	if *fps != 0 {
		cfg.FramesPerSecond = *fps
	}
	if *maxCycles != 0 {
		cfg.MaxCycles = *maxCycles
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCore wires an emulator and its pacing driver for the program.
func buildCore(prog *loader.Program, cfg *clock.RunConfig) (*core.Core, error) {
	quirks, err := cfg.ResolveQuirks()
	if err != nil {
		return nil, err
	}

	opts := []emu.EmulatorOption{emu.WithQuirks(quirks)}
	if *seed != 0 {
		opts = append(opts, emu.WithRandSeed(*seed))
	}
	if *trace {
		opts = append(opts, emu.WithLogger(createLogger(true)))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(prog.Data); err != nil {
		return nil, err
	}

	return core.NewCore(emulator, cfg), nil
}

// createLogger creates a logger with appropriate settings. The
// per-instruction trace logs at debug level.
func createLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}

// runHeadless runs the program without a window, pacing timers by
// cycle count, and prints the final machine state.
func runHeadless(c *core.Core, out io.Writer, prog *loader.Program, maxCycles uint64) int {
	start := time.Now()
	runErr := c.RunUntil(nil, maxCycles)
	wall := time.Since(start)

	stats := c.Stats()

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Program: %s\n", prog.Name)
	fmt.Fprintf(out, "Exited: %v\n", c.Exited())
	fmt.Fprintf(out, "Cycles: %d\n", stats.Cycles)
	fmt.Fprintf(out, "Timer ticks: %d\n", stats.TimerTicks)
	fmt.Fprintf(out, "Wall time: %v\n", wall)
	if runErr != nil {
		fmt.Fprintf(out, "Fault: %v\n", runErr)
	}
	fmt.Fprintf(out, "\n%s", c.Emulator().Display().String())

	if runErr != nil {
		return 2
	}
	return 0
}

// runWindowed opens the interactive window and plays the program.
func runWindowed(c *core.Core, prog *loader.Program) int {
	a := app.NewApp(c,
		app.WithTitle("c8sim - "+prog.Name),
		app.WithScale(*scale),
	)

	if err := a.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime fault: %v\n", err)
		return 2
	}
	return 0
}
