// Command corpus runs the c8sim compliance corpus.
//
// Usage:
//
//	go run ./cmd/corpus [flags]
//
// Flags:
//
//	-max-cycles  Cycle bound per program (default 100000)
//	-v           Print each program name as it runs
//
// Example:
//
//	# Run the whole corpus with per-program results
//	go run ./cmd/corpus
//
// The corpus assembles its programs in process and runs them headless,
// so a failing run points at the interpreter rather than at a ROM file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/c8lab/c8sim/compliance"
)

func main() {
	// Parse flags
	maxCycles := flag.Uint64("max-cycles", 0, "Cycle bound per program (0 = harness default)")
	verbose := flag.Bool("v", false, "Print each program name as it runs")
	flag.Parse()

	// Configure harness
	config := compliance.DefaultConfig()
	config.Output = os.Stdout
	config.Verbose = *verbose
	if *maxCycles > 0 {
		config.MaxCycles = *maxCycles
	}

	// Create harness and add the corpus
	harness := compliance.NewHarness(config)
	harness.AddPrograms(compliance.GetPrograms())

	fmt.Println("c8sim Compliance Corpus")
	fmt.Println("=======================")
	fmt.Printf("Cycle bound: %d\n", config.MaxCycles)
	fmt.Println("")

	// Run programs
	results := harness.RunAll()
	harness.PrintResults(results)

	// Count outcomes
	exited, bounded, faulted := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			faulted++
		case r.Exited:
			exited++
		default:
			bounded++
		}
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Programs: %d\n", len(results))
	fmt.Printf("Exited: %d\n", exited)
	fmt.Printf("Hit cycle bound: %d\n", bounded)
	fmt.Printf("Faulted: %d\n", faulted)

	if faulted > 0 {
		os.Exit(1)
	}
}
