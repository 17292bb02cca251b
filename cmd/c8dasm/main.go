// Command c8dasm disassembles a CHIP-8 ROM image into a listing.
//
// Usage:
//
//	go run ./cmd/c8dasm [flags] <program.ch8>
//
// Flags:
//
//	-o       Output file (default: stdout)
//	-origin  Load address the image was laid out for (default 0x200)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/c8lab/c8sim/disasm"
	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/loader"
)

var (
	output = flag.String("o", "", "Output file (default: stdout)")
	origin = flag.Uint("origin", emu.LoadAddress, "Load address the image was laid out for")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8dasm [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	romPath := flag.Arg(0)

	prog, err := loader.Load(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	text := disasm.New(uint16(*origin)).Listing(prog.Data)

	if *output == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing listing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *output)
}
