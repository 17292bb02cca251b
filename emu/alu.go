// Package emu provides functional CHIP-8 emulation.
package emu

// ALU implements the register arithmetic and logic family.
// Flag-affecting operations compute their result and flag from the
// operand values first, write the destination, then write the flag
// register last, so the flag survives even when the destination is VF.
type ALU struct {
	regFile *RegFile
	rand    func() byte
}

// NewALU creates a new ALU connected to the given register file and
// random byte source.
func NewALU(regFile *RegFile, rand func() byte) *ALU {
	return &ALU{regFile: regFile, rand: rand}
}

// LoadImm performs Vx = nn.
func (a *ALU) LoadImm(x, nn uint8) {
	a.regFile.V[x] = nn
}

// AddImm performs Vx = Vx + nn. The flag register is not touched.
func (a *ALU) AddImm(x, nn uint8) {
	a.regFile.V[x] += nn
}

// Move performs Vx = Vy.
func (a *ALU) Move(x, y uint8) {
	a.regFile.V[x] = a.regFile.V[y]
}

// Or performs Vx = Vx | Vy. The original interpreter clears the flag
// register as a side effect of its logic ops; the quirk preserves that.
func (a *ALU) Or(x, y uint8, quirks Quirks) {
	a.regFile.V[x] |= a.regFile.V[y]
	if quirks.ResetFlagOnLogic {
		a.regFile.SetFlag(0)
	}
}

// And performs Vx = Vx & Vy.
func (a *ALU) And(x, y uint8, quirks Quirks) {
	a.regFile.V[x] &= a.regFile.V[y]
	if quirks.ResetFlagOnLogic {
		a.regFile.SetFlag(0)
	}
}

// Xor performs Vx = Vx ^ Vy.
func (a *ALU) Xor(x, y uint8, quirks Quirks) {
	a.regFile.V[x] ^= a.regFile.V[y]
	if quirks.ResetFlagOnLogic {
		a.regFile.SetFlag(0)
	}
}

// Add performs Vx = Vx + Vy with VF = carry.
func (a *ALU) Add(x, y uint8) {
	op1 := a.regFile.V[x]
	op2 := a.regFile.V[y]
	sum := uint16(op1) + uint16(op2)

	carry := uint8(0)
	if sum > 0xFF {
		carry = 1
	}

	a.regFile.V[x] = uint8(sum)
	a.regFile.SetFlag(carry)
}

// Sub performs Vx = Vx - Vy with VF = 1 when no borrow occurred.
func (a *ALU) Sub(x, y uint8) {
	op1 := a.regFile.V[x]
	op2 := a.regFile.V[y]

	noBorrow := uint8(0)
	if op1 >= op2 {
		noBorrow = 1
	}

	a.regFile.V[x] = op1 - op2
	a.regFile.SetFlag(noBorrow)
}

// SubReverse performs Vx = Vy - Vx with VF = 1 when no borrow occurred.
func (a *ALU) SubReverse(x, y uint8) {
	op1 := a.regFile.V[y]
	op2 := a.regFile.V[x]

	noBorrow := uint8(0)
	if op1 >= op2 {
		noBorrow = 1
	}

	a.regFile.V[x] = op1 - op2
	a.regFile.SetFlag(noBorrow)
}

// ShiftRight performs Vx = operand >> 1 with VF = the shifted-out bit.
// The operand is Vy or Vx depending on the shift quirk.
func (a *ALU) ShiftRight(x, y uint8, quirks Quirks) {
	src := a.regFile.V[x]
	if quirks.ShiftUsesVY {
		src = a.regFile.V[y]
	}

	a.regFile.V[x] = src >> 1
	a.regFile.SetFlag(src & 0x01)
}

// ShiftLeft performs Vx = operand << 1 with VF = the shifted-out bit.
// The operand is Vy or Vx depending on the shift quirk.
func (a *ALU) ShiftLeft(x, y uint8, quirks Quirks) {
	src := a.regFile.V[x]
	if quirks.ShiftUsesVY {
		src = a.regFile.V[y]
	}

	a.regFile.V[x] = src << 1
	a.regFile.SetFlag(src >> 7)
}

// Random performs Vx = random byte & nn. Entropy comes from the
// injected source, never from engine-owned state.
func (a *ALU) Random(x, nn uint8) {
	a.regFile.V[x] = a.rand() & nn
}
