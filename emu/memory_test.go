package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	Describe("NewMemory", func() {
		It("should seed the font at address zero", func() {
			// Glyph 0 is F0 90 90 90 F0.
			Expect(memory.ReadByte(0x000)).To(Equal(byte(0xF0)))
			Expect(memory.ReadByte(0x001)).To(Equal(byte(0x90)))
			Expect(memory.ReadByte(0x004)).To(Equal(byte(0xF0)))
		})

		It("should seed all sixteen glyphs", func() {
			// Glyph F starts at 15*5 and is F0 80 F0 80 80.
			base := uint16(15 * emu.FontGlyphSize)
			Expect(memory.ReadByte(base)).To(Equal(byte(0xF0)))
			Expect(memory.ReadByte(base + 4)).To(Equal(byte(0x80)))
		})

		It("should zero the program area", func() {
			Expect(memory.ReadByte(emu.LoadAddress)).To(Equal(byte(0)))
			Expect(memory.ReadByte(emu.MemorySize - 1)).To(Equal(byte(0)))
		})
	})

	Describe("ReadByte and WriteByte", func() {
		It("should round-trip a byte", func() {
			memory.WriteByte(0x300, 0x5A)

			Expect(memory.ReadByte(0x300)).To(Equal(byte(0x5A)))
		})

		It("should wrap addresses beyond the memory size", func() {
			memory.WriteByte(0x300, 0x77)

			Expect(memory.ReadByte(0x300 + emu.MemorySize)).To(Equal(byte(0x77)))
		})

		It("should wrap writes beyond the memory size", func() {
			memory.WriteByte(emu.MemorySize+0x010, 0x42)

			Expect(memory.ReadByte(0x010)).To(Equal(byte(0x42)))
		})
	})

	Describe("ReadWord", func() {
		It("should read big-endian", func() {
			memory.WriteByte(0x200, 0x12)
			memory.WriteByte(0x201, 0x34)

			Expect(memory.ReadWord(0x200)).To(Equal(uint16(0x1234)))
		})

		It("should span the top of memory into the bottom", func() {
			memory.WriteByte(emu.MemorySize-1, 0xAB)
			memory.WriteByte(0x000, 0xCD)

			Expect(memory.ReadWord(emu.MemorySize - 1)).To(Equal(uint16(0xABCD)))
		})
	})

	Describe("LoadProgram", func() {
		It("should copy the image to the load address", func() {
			err := memory.LoadProgram([]byte{0x60, 0x01, 0x70, 0x02})

			Expect(err).NotTo(HaveOccurred())
			Expect(memory.ReadByte(0x200)).To(Equal(byte(0x60)))
			Expect(memory.ReadByte(0x203)).To(Equal(byte(0x02)))
		})

		It("should accept the largest image that fits", func() {
			image := make([]byte, emu.MaxProgramSize)
			image[len(image)-1] = 0xEE

			Expect(memory.LoadProgram(image)).To(Succeed())
			Expect(memory.ReadByte(emu.MemorySize - 1)).To(Equal(byte(0xEE)))
		})

		It("should leave memory untouched when the image is too large", func() {
			image := make([]byte, emu.MaxProgramSize+1)
			for i := range image {
				image[i] = 0xFF
			}

			err := memory.LoadProgram(image)

			Expect(err).To(HaveOccurred())
			Expect(memory.ReadByte(emu.LoadAddress)).To(Equal(byte(0)))
		})
	})

	Describe("Reset", func() {
		It("should clear the program area and keep the font", func() {
			Expect(memory.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			memory.WriteByte(0x050, 0x99) // scratch in the interpreter area

			memory.Reset()

			Expect(memory.ReadByte(0x200)).To(Equal(byte(0)))
			Expect(memory.ReadByte(0x201)).To(Equal(byte(0)))
			Expect(memory.ReadByte(0x000)).To(Equal(byte(0xF0)))
			Expect(memory.ReadByte(0x050)).To(Equal(byte(0x99)))
		})
	})
})
