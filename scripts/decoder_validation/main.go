// Validate the instruction decoder - sweeps every word against the reference opcode tables
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"

	"github.com/c8lab/c8sim/insts"
)

// divergence records a word the decoder and the reference tables
// classify differently.
type divergence struct {
	word uint16
	text string
}

// tableAccepts reports whether the shared opcode tables match word.
func tableAccepts(word uint16) bool {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value {
			return true
		}
	}
	return false
}

func main() {
	decoder := insts.NewDecoder()
	var inst insts.Instruction

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.DecodeInto(0x8124, &inst)
	}

	// Measure the hot decode path across the full word space
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	passes := 16
	start := time.Now()

	for p := 0; p < passes; p++ {
		for word := 0; word <= 0xFFFF; word++ {
			decoder.DecodeInto(uint16(word), &inst)
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := passes * 0x10000
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	// Cross-check the accept sets word by word. The machine-call family
	// diverges on purpose: SYS decodes so the engine can report it
	// precisely, and EXIT is an interpreter extension the shared tables
	// do not carry.
	agreements := 0
	sysForms := 0
	exitForms := 0
	var unexplained []divergence

	for word := 0; word <= 0xFFFF; word++ {
		w := uint16(word)
		decoder.DecodeInto(w, &inst)
		mine := inst.Op != insts.OpUnknown
		table := tableAccepts(w)

		switch {
		case mine == table:
			agreements++
		case inst.Op == insts.OpSys:
			sysForms++
		case inst.Op == insts.OpExit:
			exitForms++
		case mine:
			unexplained = append(unexplained, divergence{w, inst.String()})
		default:
			unexplained = append(unexplained, divergence{w, "reference tables accept"})
		}
	}

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("========================================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("\n")
	fmt.Printf("Accept set vs reference tables:\n")
	fmt.Printf("  Agreements: %d\n", agreements)
	fmt.Printf("  Machine-call forms (engine rejects at execute): %d\n", sysForms)
	fmt.Printf("  Interpreter exit extension: %d\n", exitForms)
	fmt.Printf("  Unexplained: %d\n", len(unexplained))

	for i, d := range unexplained {
		if i == 8 {
			fmt.Printf("  ... and %d more\n", len(unexplained)-8)
			break
		}
		fmt.Printf("  0x%04X  %s\n", d.word, d.text)
	}

	if allocations == 0 {
		fmt.Printf("\n✅ SUCCESS: Zero allocations on the decode path\n")
	} else if float64(allocations)/float64(totalDecodes) < 0.1 {
		fmt.Printf("\n✅ GOOD: Low allocation rate (< 0.1 per decode)\n")
	} else {
		fmt.Printf("\n⚠️  WARNING: High allocation rate detected\n")
	}

	if len(unexplained) == 0 {
		fmt.Printf("✅ SUCCESS: Accept sets agree on every remaining word\n")
	} else {
		fmt.Printf("⚠️  WARNING: %d words classified differently\n", len(unexplained))
	}
}
