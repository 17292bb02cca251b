// Package emu provides functional CHIP-8 emulation.
package emu

// indexMask keeps the index register within its twelve effective bits.
const indexMask = 0x0FFF

// LoadStoreUnit implements index-register and memory block operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// SetIndex performs I = addr.
func (lsu *LoadStoreUnit) SetIndex(addr uint16) {
	lsu.regFile.I = addr & indexMask
}

// AddIndex performs I = I + Vx. The flag register is not touched.
func (lsu *LoadStoreUnit) AddIndex(x uint8) {
	lsu.regFile.I = (lsu.regFile.I + uint16(lsu.regFile.V[x])) & indexMask
}

// FontAddress points I at the built-in glyph for the low nibble of Vx.
func (lsu *LoadStoreUnit) FontAddress(x uint8) {
	lsu.regFile.I = uint16(lsu.regFile.V[x]&0x0F) * FontGlyphSize
}

// StoreBCD writes the decimal digits of Vx to memory at I, I+1 and
// I+2: hundreds first, then tens, then ones.
func (lsu *LoadStoreUnit) StoreBCD(x uint8) {
	v := lsu.regFile.V[x]
	lsu.memory.WriteByte(lsu.regFile.I, v/100)
	lsu.memory.WriteByte(lsu.regFile.I+1, v%100/10)
	lsu.memory.WriteByte(lsu.regFile.I+2, v%10)
}

// StoreRegs copies V0 through Vx inclusive to memory starting at I.
// The index quirk advances I past the stored block afterwards.
func (lsu *LoadStoreUnit) StoreRegs(x uint8, quirks Quirks) {
	for i := uint16(0); i <= uint16(x); i++ {
		lsu.memory.WriteByte(lsu.regFile.I+i, lsu.regFile.V[i])
	}
	if quirks.LoadStoreIncrementsIndex {
		lsu.regFile.I = (lsu.regFile.I + uint16(x) + 1) & indexMask
	}
}

// LoadRegs copies memory starting at I into V0 through Vx inclusive.
// The index quirk advances I past the loaded block afterwards.
func (lsu *LoadStoreUnit) LoadRegs(x uint8, quirks Quirks) {
	for i := uint16(0); i <= uint16(x); i++ {
		lsu.regFile.V[i] = lsu.memory.ReadByte(lsu.regFile.I + i)
	}
	if quirks.LoadStoreIncrementsIndex {
		lsu.regFile.I = (lsu.regFile.I + uint16(x) + 1) & indexMask
	}
}

// SpriteRows reads n consecutive sprite rows from memory starting at
// I. Addresses wrap like every other access.
func (lsu *LoadStoreUnit) SpriteRows(n uint8) []byte {
	rows := make([]byte, n)
	for i := range rows {
		rows[i] = lsu.memory.ReadByte(lsu.regFile.I + uint16(i))
	}
	return rows
}
