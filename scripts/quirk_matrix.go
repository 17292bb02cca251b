// Package main provides quirk divergence validation for the two
// interpreter profiles. Ensures the divergence probes tell original
// and modern behavior apart.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/c8lab/c8sim/compliance"
	"github.com/c8lab/c8sim/emu"
)

// checkProbe runs one divergence probe under both profiles and prints
// its rows of the matrix.
func checkProbe(probe compliance.DivergenceProbe) bool {
	harness := compliance.NewHarness(compliance.DefaultConfig())
	harness.AddPrograms(probe.Programs())

	results := harness.RunAll()
	if len(results) != 2 {
		fmt.Printf("\n%s\n", probe.Name)
		fmt.Printf("  ❌ expected 2 results, got %d\n", len(results))
		return false
	}
	original, modern := results[0], results[1]

	fmt.Printf("\n%s - %s\n", probe.Name, probe.Description)

	pass := reportProfile("original:", original, probe.WantOriginal, probe.WantLitOriginal)
	pass = reportProfile("modern:", modern, probe.WantModern, probe.WantLitModern) && pass

	if original.Regs == modern.Regs && original.LitPixels == modern.LitPixels {
		fmt.Printf("  ❌ profiles agree; the probe separates nothing\n")
		pass = false
	}

	return pass
}

// reportProfile prints one profile's observed state and checks it
// against the expected values. Registers print in index order.
func reportProfile(label string, r compliance.Result, want map[uint8]uint8, wantLit int) bool {
	if r.Err != nil {
		fmt.Printf("  ❌ %-10s fault: %v\n", label, r.Err)
		return false
	}

	pass := true
	var b strings.Builder

	for reg := uint8(0); reg < emu.NumRegs; reg++ {
		value, ok := want[reg]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " V%X=%02X", reg, r.Regs[reg])
		if r.Regs[reg] != value {
			fmt.Fprintf(&b, " (want %02X)", value)
			pass = false
		}
	}

	fmt.Fprintf(&b, " lit=%d", r.LitPixels)
	if r.LitPixels != wantLit {
		fmt.Fprintf(&b, " (want %d)", wantLit)
		pass = false
	}

	mark := "✅"
	if !pass {
		mark = "❌"
	}
	fmt.Printf("  %s %-10s%s\n", mark, label, b.String())

	return pass
}

func main() {
	fmt.Println("c8sim Quirk Matrix - Profile Divergence")
	fmt.Println("=======================================================")

	allPassed := true

	for _, probe := range compliance.GetDivergenceProbes() {
		if !checkProbe(probe) {
			allPassed = false
		}
	}

	fmt.Println("\n=======================================================")
	if allPassed {
		fmt.Println("🎉 ALL PROBES DIVERGE AS EXPECTED")
		fmt.Println("✅ The original and modern profiles are told apart")
		os.Exit(0)
	} else {
		fmt.Println("❌ PROBE CHECKS FAILED")
		fmt.Println("🚨 A quirk is not separating the profiles")
		os.Exit(1)
	}
}
