// Package main provides the entry point for c8sim.
// c8sim is a timed CHIP-8 virtual machine interpreter.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("c8sim - CHIP-8 Virtual Machine")
	fmt.Println("")
	fmt.Println("Usage: c8sim [options] <program.ch8>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -quirks      Quirks profile: original or modern")
	fmt.Println("  -headless    Run without a window and print the final state")
	fmt.Println("  -config      Path to run configuration JSON file")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Tools: go run ./cmd/c8asm, go run ./cmd/c8dasm")
	fmt.Println("Run 'go run ./cmd/c8sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
