// Package emu provides functional CHIP-8 emulation.
package emu

// BranchUnit implements CHIP-8 control flow: jumps, calls, returns and
// conditional skips. It operates on a program counter that has already
// advanced past the current instruction.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given
// register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// Jump sets the program counter to addr.
func (b *BranchUnit) Jump(addr uint16) {
	b.regFile.PC = addr & AddrMask
}

// JumpOffset jumps to addr plus an offset register. The offset comes
// from V0, or from Vx (x = high nibble of addr) when the jump quirk is
// active.
func (b *BranchUnit) JumpOffset(x uint8, addr uint16, quirks Quirks) {
	sel := uint8(0)
	if quirks.JumpWithVX {
		sel = x
	}
	b.regFile.PC = (addr + uint16(b.regFile.V[sel])) & AddrMask
}

// Call pushes the return address and jumps to addr. Surfaces
// ErrStackOverflow from a full stack without modifying the program
// counter.
func (b *BranchUnit) Call(addr uint16) error {
	if err := b.regFile.PushCall(b.regFile.PC); err != nil {
		return err
	}
	b.regFile.PC = addr & AddrMask
	return nil
}

// Return pops the saved return address into the program counter.
// Surfaces ErrStackUnderflow when no call is outstanding.
func (b *BranchUnit) Return() error {
	addr, err := b.regFile.PopCall()
	if err != nil {
		return err
	}
	b.regFile.PC = addr
	return nil
}

// Skip advances the program counter past the next instruction.
func (b *BranchUnit) Skip() {
	b.regFile.AdvancePC()
}

// SkipIf advances past the next instruction when cond holds.
func (b *BranchUnit) SkipIf(cond bool) {
	if cond {
		b.Skip()
	}
}

// Refetch rewinds the program counter to the current instruction so it
// executes again on the next cycle. Used by the wait-for-key op, which
// must never block the driver call.
func (b *BranchUnit) Refetch() {
	b.regFile.PC = (b.regFile.PC - 2) & AddrMask
}
