package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("LoadStoreUnit", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		lsu     *emu.LoadStoreUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		regFile.Reset()
		memory = emu.NewMemory()
		lsu = emu.NewLoadStoreUnit(regFile, memory)
	})

	Describe("SetIndex", func() {
		It("should load the index register", func() {
			lsu.SetIndex(0x2EA)

			Expect(regFile.I).To(Equal(uint16(0x2EA)))
		})
	})

	Describe("AddIndex", func() {
		It("should add Vx without touching VF", func() {
			regFile.I = 0x100
			regFile.V[0x4] = 0x20
			regFile.V[0xF] = 3

			lsu.AddIndex(0x4)

			Expect(regFile.I).To(Equal(uint16(0x120)))
			Expect(regFile.V[0xF]).To(Equal(uint8(3)))
		})

		It("should wrap within the index width", func() {
			regFile.I = 0xFFE
			regFile.V[0x4] = 4

			lsu.AddIndex(0x4)

			Expect(regFile.I).To(Equal(uint16(0x002)))
		})
	})

	Describe("FontAddress", func() {
		It("should point I at the glyph for Vx", func() {
			regFile.V[0x0] = 0xA

			lsu.FontAddress(0x0)

			Expect(regFile.I).To(Equal(uint16(0xA * emu.FontGlyphSize)))
		})

		It("should use only the low nibble of Vx", func() {
			regFile.V[0x0] = 0x3A

			lsu.FontAddress(0x0)

			Expect(regFile.I).To(Equal(uint16(0xA * emu.FontGlyphSize)))
		})
	})

	Describe("StoreBCD", func() {
		It("should write hundreds, tens, ones", func() {
			regFile.I = 0x300
			regFile.V[0x7] = 159

			lsu.StoreBCD(0x7)

			Expect(memory.ReadByte(0x300)).To(Equal(byte(1)))
			Expect(memory.ReadByte(0x301)).To(Equal(byte(5)))
			Expect(memory.ReadByte(0x302)).To(Equal(byte(9)))
		})

		It("should pad small values with leading zeros", func() {
			regFile.I = 0x300
			regFile.V[0x7] = 7

			lsu.StoreBCD(0x7)

			Expect(memory.ReadByte(0x300)).To(Equal(byte(0)))
			Expect(memory.ReadByte(0x301)).To(Equal(byte(0)))
			Expect(memory.ReadByte(0x302)).To(Equal(byte(7)))
		})
	})

	Describe("StoreRegs", func() {
		It("should store V0 through Vx inclusive", func() {
			regFile.I = 0x300
			regFile.V[0x0] = 0x11
			regFile.V[0x1] = 0x22
			regFile.V[0x2] = 0x33
			regFile.V[0x3] = 0x44

			lsu.StoreRegs(0x2, emu.Quirks{})

			Expect(memory.ReadByte(0x300)).To(Equal(byte(0x11)))
			Expect(memory.ReadByte(0x301)).To(Equal(byte(0x22)))
			Expect(memory.ReadByte(0x302)).To(Equal(byte(0x33)))
			Expect(memory.ReadByte(0x303)).To(Equal(byte(0))) // V3 excluded
		})

		It("should store only V0 for x = 0", func() {
			regFile.I = 0x300
			regFile.V[0x0] = 0x99

			lsu.StoreRegs(0x0, emu.Quirks{})

			Expect(memory.ReadByte(0x300)).To(Equal(byte(0x99)))
			Expect(memory.ReadByte(0x301)).To(Equal(byte(0)))
		})

		It("should leave I alone without the index quirk", func() {
			regFile.I = 0x300

			lsu.StoreRegs(0x2, emu.Quirks{})

			Expect(regFile.I).To(Equal(uint16(0x300)))
		})

		It("should advance I past the block under the index quirk", func() {
			regFile.I = 0x300

			lsu.StoreRegs(0x2, emu.Quirks{LoadStoreIncrementsIndex: true})

			Expect(regFile.I).To(Equal(uint16(0x303)))
		})
	})

	Describe("LoadRegs", func() {
		It("should load V0 through Vx inclusive", func() {
			regFile.I = 0x300
			memory.WriteByte(0x300, 0xAA)
			memory.WriteByte(0x301, 0xBB)
			regFile.V[0x2] = 0x55

			lsu.LoadRegs(0x1, emu.Quirks{})

			Expect(regFile.V[0x0]).To(Equal(uint8(0xAA)))
			Expect(regFile.V[0x1]).To(Equal(uint8(0xBB)))
			Expect(regFile.V[0x2]).To(Equal(uint8(0x55))) // untouched
		})

		It("should advance I past the block under the index quirk", func() {
			regFile.I = 0x300

			lsu.LoadRegs(0xF, emu.Quirks{LoadStoreIncrementsIndex: true})

			Expect(regFile.I).To(Equal(uint16(0x310)))
		})
	})

	Describe("SpriteRows", func() {
		It("should read consecutive rows at I", func() {
			regFile.I = 0x300
			memory.WriteByte(0x300, 0xF0)
			memory.WriteByte(0x301, 0x90)

			rows := lsu.SpriteRows(2)

			Expect(rows).To(Equal([]byte{0xF0, 0x90}))
		})

		It("should wrap reads past the top of memory", func() {
			regFile.I = emu.MemorySize - 1
			memory.WriteByte(emu.MemorySize-1, 0x0F)
			memory.WriteByte(0x000, 0xF0) // font glyph 0 lives here

			rows := lsu.SpriteRows(2)

			Expect(rows).To(Equal([]byte{0x0F, 0xF0}))
		})
	})
})
