// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"github.com/sarchlab/akita/v4/mem/mem"
)

// MemorySize is the total addressable memory in bytes.
const MemorySize = 4096

// AddrMask wraps addresses into memory bounds. Out-of-range access
// never faults; it wraps.
const AddrMask = MemorySize - 1

// LoadAddress is where program images are placed and execution begins.
const LoadAddress = 0x200

// MaxProgramSize is the largest program image that fits above the load
// address.
const MaxProgramSize = MemorySize - LoadAddress

// FontGlyphSize is the height in bytes of one built-in font glyph.
const FontGlyphSize = 5

// fontSprites holds the sixteen built-in hexadecimal glyphs, five bytes
// per glyph, placed at address zero.
var fontSprites = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4 KiB machine memory, backed by an Akita storage.
// Every access wraps its address modulo the memory size.
type Memory struct {
	storage *mem.Storage
}

// NewMemory creates zeroed memory with the font glyphs loaded at the
// base.
func NewMemory() *Memory {
	m := &Memory{storage: mem.NewStorage(MemorySize)}
	m.loadFont()
	return m
}

// loadFont places the built-in glyphs at address zero.
func (m *Memory) loadFont() {
	m.write(0, fontSprites[:])
}

// ReadByte reads one byte. The address wraps.
func (m *Memory) ReadByte(addr uint16) byte {
	data, err := m.storage.Read(uint64(addr&AddrMask), 1)
	if err != nil {
		panic(err) // unreachable: masked addresses are always in bounds
	}
	return data[0]
}

// WriteByte writes one byte. The address wraps.
func (m *Memory) WriteByte(addr uint16, value byte) {
	m.write(addr&AddrMask, []byte{value})
}

// ReadWord reads a big-endian 16-bit word. Each byte address wraps
// independently, so a fetch at the last byte of memory spans to the
// first.
func (m *Memory) ReadWord(addr uint16) uint16 {
	hi := m.ReadByte(addr)
	lo := m.ReadByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// LoadProgram copies a program image to the load address. Fails with
// ProgramTooLargeError if the image does not fit; memory is untouched
// on failure.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return &ProgramTooLargeError{Size: len(program), Max: MaxProgramSize}
	}
	m.write(LoadAddress, program)
	return nil
}

// Reset clears memory at and above the load address and reloads the
// font. The interpreter area below the load address is preserved.
func (m *Memory) Reset() {
	m.write(LoadAddress, make([]byte, MaxProgramSize))
	m.loadFont()
}

// write stores into the backing storage at an already-masked address.
func (m *Memory) write(addr uint16, data []byte) {
	if err := m.storage.Write(uint64(addr), data); err != nil {
		panic(err) // unreachable: callers stay within capacity
	}
}
