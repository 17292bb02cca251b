// Package emu provides functional CHIP-8 emulation.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 16

// FlagReg is the index of VF, which doubles as the carry/borrow and
// collision flag register.
const FlagReg = 0xF

// StackDepth is the fixed call stack capacity. Exceeding it is a fatal
// error, not silent truncation.
const StackDepth = 16

// RegFile represents the CHIP-8 register file.
// It contains sixteen byte-wide general registers (V0-VF), the index
// register, the program counter, a fixed-depth call stack, and the two
// timers.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// V[FlagReg] is overwritten by arithmetic, shift and draw results.
	V [NumRegs]uint8

	// I is the index register. Twelve effective bits, stored wider.
	I uint16

	// PC is the program counter. Even-aligned, wraps within memory.
	PC uint16

	// Stack holds call return addresses. SP indexes the next free slot.
	Stack [StackDepth]uint16
	SP    uint8

	// DT and ST are the delay and sound timers. They decrement toward
	// zero at a fixed 60 Hz cadence independent of instruction rate.
	DT uint8
	ST uint8
}

// Reset restores power-on state: cleared registers, stack and timers,
// program counter at the load address.
func (r *RegFile) Reset() {
	*r = RegFile{PC: LoadAddress}
}

// AdvancePC moves the program counter to the next instruction,
// wrapping within memory bounds.
func (r *RegFile) AdvancePC() {
	r.PC = (r.PC + 2) & AddrMask
}

// PushCall saves a return address. Fails with ErrStackOverflow at
// capacity.
func (r *RegFile) PushCall(addr uint16) error {
	if int(r.SP) >= len(r.Stack) {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

// PopCall restores the most recent return address. Fails with
// ErrStackUnderflow when no call is outstanding.
func (r *RegFile) PopCall() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// SetFlag writes the flag register.
func (r *RegFile) SetFlag(value uint8) {
	r.V[FlagReg] = value
}

// TickTimers decrements each nonzero timer by one. Timers at zero stay
// at zero; they never go negative.
func (r *RegFile) TickTimers() {
	if r.DT > 0 {
		r.DT--
	}
	if r.ST > 0 {
		r.ST--
	}
}
