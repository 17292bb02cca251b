// Package main provides a profiling wrapper for c8sim to identify performance bottlenecks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/loader"
	"github.com/c8lab/c8sim/timing/clock"
	"github.com/c8lab/c8sim/timing/core"
)

var (
	paced       = flag.Bool("paced", false, "Drive the timed core with timer delivery instead of the bare interpreter")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Int("max-instr", 1000000, "max instructions to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	romPath := flag.Arg(0)

	prog, err := loader.Load(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s\n", romPath)
	fmt.Printf("Size: %d bytes\n", len(prog.Data))

	start := time.Now()

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	var instrCount uint64
	var runErr error

	if *paced {
		instrCount, runErr = runPacedProfile(prog)
	} else {
		instrCount, runErr = runEmulationProfile(prog)
	}

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	if runErr != nil && !errors.Is(runErr, emu.ErrInstructionLimit) {
		fmt.Printf("Fault: %v\n", runErr)
	}
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
}

// runEmulationProfile runs the bare interpreter flat out, with no
// timer delivery or pacing in the loop.
func runEmulationProfile(prog *loader.Program) (uint64, error) {
	var opts []emu.EmulatorOption
	if *instruction > 0 {
		opts = append(opts, emu.WithMaxInstructions(uint64(*instruction)))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(prog.Data); err != nil {
		return 0, err
	}

	err := emulator.Run()
	return emulator.InstructionCount(), err
}

// runPacedProfile drives the timed core, so timer delivery and the
// cycle accounting show up in the profile.
func runPacedProfile(prog *loader.Program) (uint64, error) {
	emulator := emu.NewEmulator()
	if err := emulator.LoadProgram(prog.Data); err != nil {
		return 0, err
	}

	var maxCycles uint64
	if *instruction > 0 {
		maxCycles = uint64(*instruction)
	}

	c := core.NewCore(emulator, clock.DefaultRunConfig())
	err := c.RunUntil(nil, maxCycles)
	return c.Stats().Cycles, err
}
