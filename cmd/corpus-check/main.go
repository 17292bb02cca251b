// Package main provides a CLI tool to check corpus opcode coverage.
package main

import (
	"fmt"
	"os"

	"github.com/c8lab/c8sim/asm"
	"github.com/c8lab/c8sim/compliance"
	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/insts"
)

// executableOps lists every operation the engine executes, in opcode
// order. SYS is absent: the engine rejects it.
var executableOps = []struct {
	op   insts.Op
	name string
}{
	{insts.OpClearScreen, "CLS"},
	{insts.OpReturn, "RET"},
	{insts.OpExit, "EXIT"},
	{insts.OpJump, "JP nnn"},
	{insts.OpCall, "CALL nnn"},
	{insts.OpSkipEqImm, "SE Vx, nn"},
	{insts.OpSkipNeImm, "SNE Vx, nn"},
	{insts.OpSkipEqReg, "SE Vx, Vy"},
	{insts.OpLoadImm, "LD Vx, nn"},
	{insts.OpAddImm, "ADD Vx, nn"},
	{insts.OpMove, "LD Vx, Vy"},
	{insts.OpOr, "OR Vx, Vy"},
	{insts.OpAnd, "AND Vx, Vy"},
	{insts.OpXor, "XOR Vx, Vy"},
	{insts.OpAdd, "ADD Vx, Vy"},
	{insts.OpSub, "SUB Vx, Vy"},
	{insts.OpShiftRight, "SHR Vx, Vy"},
	{insts.OpSubReverse, "SUBN Vx, Vy"},
	{insts.OpShiftLeft, "SHL Vx, Vy"},
	{insts.OpSkipNeReg, "SNE Vx, Vy"},
	{insts.OpLoadIndex, "LD I, nnn"},
	{insts.OpJumpV0, "JP V0, nnn"},
	{insts.OpRandom, "RND Vx, nn"},
	{insts.OpDraw, "DRW Vx, Vy, n"},
	{insts.OpSkipKeyDown, "SKP Vx"},
	{insts.OpSkipKeyUp, "SKNP Vx"},
	{insts.OpReadDelay, "LD Vx, DT"},
	{insts.OpWaitKey, "LD Vx, K"},
	{insts.OpSetDelay, "LD DT, Vx"},
	{insts.OpSetSound, "LD ST, Vx"},
	{insts.OpAddIndex, "ADD I, Vx"},
	{insts.OpFontAddress, "LD F, Vx"},
	{insts.OpStoreBCD, "LD B, Vx"},
	{insts.OpStoreRegs, "LD [I], Vx"},
	{insts.OpLoadRegs, "LD Vx, [I]"},
}

func main() {
	decoder := insts.NewDecoder()
	var inst insts.Instruction

	// Count the programs exercising each operation. The scan is static:
	// data words that happen to decode do not run, but none of the
	// corpus data aliases an executable encoding.
	seen := map[insts.Op]int{}

	for _, p := range compliance.GetPrograms() {
		image, err := asm.New(emu.LoadAddress).Assemble(p.Source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error assembling %s: %v\n", p.Name, err)
			os.Exit(1)
		}

		inProgram := map[insts.Op]bool{}
		for i := 0; i+1 < len(image); i += 2 {
			word := uint16(image[i])<<8 | uint16(image[i+1])
			decoder.DecodeInto(word, &inst)
			if inst.Op == insts.OpUnknown || inst.Op == insts.OpSys {
				continue
			}
			inProgram[inst.Op] = true
		}
		for op := range inProgram {
			seen[op]++
		}
	}

	covered := 0
	for _, entry := range executableOps {
		if seen[entry.op] > 0 {
			covered++
		}
	}

	fmt.Printf("%d\n", covered)

	fmt.Fprintf(os.Stderr, "\nCovered operations (%d of %d):\n", covered, len(executableOps))
	for _, entry := range executableOps {
		if seen[entry.op] == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "  ✅ %-14s %d programs\n", entry.name, seen[entry.op])
	}

	missing := len(executableOps) - covered
	if missing > 0 {
		fmt.Fprintf(os.Stderr, "\nMissing operations (%d):\n", missing)
		for _, entry := range executableOps {
			if seen[entry.op] == 0 {
				fmt.Fprintf(os.Stderr, "  ❌ %s - add a corpus program exercising it\n", entry.name)
			}
		}
		os.Exit(1)
	}
}
