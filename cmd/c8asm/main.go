// Command c8asm assembles CHIP-8 source into a ROM image.
//
// Usage:
//
//	go run ./cmd/c8asm [flags] <program.asm>
//
// Flags:
//
//	-o        Output file (default: source name with .ch8 extension)
//	-origin   Load address the image is laid out for (default 0x200)
//	-listing  Print a disassembly listing of the produced image
//
// Example:
//
//	# Assemble and inspect the result
//	go run ./cmd/c8asm -listing pong.asm
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c8lab/c8sim/asm"
	"github.com/c8lab/c8sim/disasm"
	"github.com/c8lab/c8sim/emu"
)

var (
	output  = flag.String("o", "", "Output file (default: source name with .ch8 extension)")
	origin  = flag.Uint("origin", emu.LoadAddress, "Load address the image is laid out for")
	listing = flag.Bool("listing", false, "Print a disassembly listing of the produced image")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8asm [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sourcePath := flag.Arg(0)

	image, err := asm.New(uint16(*origin)).AssembleFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error assembling: %v\n", err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = outputName(sourcePath)
	}

	if err := os.WriteFile(outPath, image, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(image))

	if *listing {
		fmt.Println()
		fmt.Print(disasm.New(uint16(*origin)).Listing(image))
	}
}

// outputName derives the image file name from the source path.
func outputName(sourcePath string) string {
	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	return base + ".ch8"
}
