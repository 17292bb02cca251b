package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		regFile.Reset()
		alu = emu.NewALU(regFile, func() byte { return 0xA5 })
	})

	Describe("LoadImm", func() {
		It("should load the immediate", func() {
			alu.LoadImm(0x3, 0x7F)

			Expect(regFile.V[0x3]).To(Equal(uint8(0x7F)))
		})
	})

	Describe("AddImm", func() {
		It("should add without touching VF", func() {
			regFile.V[0x2] = 10
			regFile.V[0xF] = 9

			alu.AddImm(0x2, 5)

			Expect(regFile.V[0x2]).To(Equal(uint8(15)))
			Expect(regFile.V[0xF]).To(Equal(uint8(9)))
		})

		It("should wrap on overflow and still not touch VF", func() {
			regFile.V[0x2] = 0xFF

			alu.AddImm(0x2, 2)

			Expect(regFile.V[0x2]).To(Equal(uint8(1)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})
	})

	Describe("Move", func() {
		It("should copy Vy into Vx", func() {
			regFile.V[0x5] = 0x42

			alu.Move(0x1, 0x5)

			Expect(regFile.V[0x1]).To(Equal(uint8(0x42)))
			Expect(regFile.V[0x5]).To(Equal(uint8(0x42)))
		})
	})

	Describe("logic operations", func() {
		BeforeEach(func() {
			regFile.V[0x1] = 0b1100_1100
			regFile.V[0x2] = 0b1010_1010
		})

		It("should OR into Vx", func() {
			alu.Or(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0x1]).To(Equal(uint8(0b1110_1110)))
		})

		It("should AND into Vx", func() {
			alu.And(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0x1]).To(Equal(uint8(0b1000_1000)))
		})

		It("should XOR into Vx", func() {
			alu.Xor(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0x1]).To(Equal(uint8(0b0110_0110)))
		})

		It("should leave VF alone without the reset quirk", func() {
			regFile.V[0xF] = 7

			alu.Or(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0xF]).To(Equal(uint8(7)))
		})

		It("should zero VF with the reset quirk", func() {
			quirks := emu.Quirks{ResetFlagOnLogic: true}
			regFile.V[0xF] = 7

			alu.Or(0x1, 0x2, quirks)
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))

			regFile.V[0xF] = 7
			alu.And(0x1, 0x2, quirks)
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))

			regFile.V[0xF] = 7
			alu.Xor(0x1, 0x2, quirks)
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})
	})

	Describe("Add", func() {
		It("should clear VF when there is no carry", func() {
			regFile.V[0x1] = 10
			regFile.V[0x2] = 20
			regFile.V[0xF] = 1

			alu.Add(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(30)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should wrap and set VF on carry", func() {
			regFile.V[0x1] = 200
			regFile.V[0x2] = 100

			alu.Add(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(44)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should add a register to itself", func() {
			regFile.V[0x1] = 0x90

			alu.Add(0x1, 0x1)

			Expect(regFile.V[0x1]).To(Equal(uint8(0x20)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should let the flag win when VF is the destination", func() {
			regFile.V[0xF] = 200
			regFile.V[0x2] = 100

			alu.Add(0xF, 0x2)

			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should let a clear flag win when VF is the destination", func() {
			regFile.V[0xF] = 10
			regFile.V[0x2] = 20

			alu.Add(0xF, 0x2)

			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})
	})

	Describe("Sub", func() {
		It("should set VF when there is no borrow", func() {
			regFile.V[0x1] = 30
			regFile.V[0x2] = 10

			alu.Sub(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(20)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should wrap and clear VF on borrow", func() {
			regFile.V[0x1] = 10
			regFile.V[0x2] = 30

			alu.Sub(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(236)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should treat equal operands as no borrow", func() {
			regFile.V[0x1] = 7
			regFile.V[0x2] = 7

			alu.Sub(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(0)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should let the flag win when VF is the destination", func() {
			regFile.V[0xF] = 30
			regFile.V[0x2] = 10

			alu.Sub(0xF, 0x2)

			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})
	})

	Describe("SubReverse", func() {
		It("should compute Vy minus Vx", func() {
			regFile.V[0x1] = 10
			regFile.V[0x2] = 30

			alu.SubReverse(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(20)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should wrap and clear VF on borrow", func() {
			regFile.V[0x1] = 30
			regFile.V[0x2] = 10

			alu.SubReverse(0x1, 0x2)

			Expect(regFile.V[0x1]).To(Equal(uint8(236)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})
	})

	Describe("ShiftRight", func() {
		It("should shift Vx and capture the low bit in VF", func() {
			regFile.V[0x1] = 0b0000_0101

			alu.ShiftRight(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0x1]).To(Equal(uint8(0b0000_0010)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should shift Vy into Vx under the shift quirk", func() {
			quirks := emu.Quirks{ShiftUsesVY: true}
			regFile.V[0x1] = 0xFF
			regFile.V[0x2] = 0b0000_0100

			alu.ShiftRight(0x1, 0x2, quirks)

			Expect(regFile.V[0x1]).To(Equal(uint8(0b0000_0010)))
			Expect(regFile.V[0x2]).To(Equal(uint8(0b0000_0100)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should let the flag win when VF is the destination", func() {
			regFile.V[0xF] = 0b0000_0101

			alu.ShiftRight(0xF, 0x0, emu.Quirks{})

			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})
	})

	Describe("ShiftLeft", func() {
		It("should shift Vx and capture the high bit in VF", func() {
			regFile.V[0x1] = 0b1100_0000

			alu.ShiftLeft(0x1, 0x2, emu.Quirks{})

			Expect(regFile.V[0x1]).To(Equal(uint8(0b1000_0000)))
			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})

		It("should shift Vy into Vx under the shift quirk", func() {
			quirks := emu.Quirks{ShiftUsesVY: true}
			regFile.V[0x1] = 0xFF
			regFile.V[0x2] = 0b0010_0001

			alu.ShiftLeft(0x1, 0x2, quirks)

			Expect(regFile.V[0x1]).To(Equal(uint8(0b0100_0010)))
			Expect(regFile.V[0xF]).To(Equal(uint8(0)))
		})

		It("should let the flag win when VF is the destination", func() {
			regFile.V[0xF] = 0b1000_0000

			alu.ShiftLeft(0xF, 0x0, emu.Quirks{})

			Expect(regFile.V[0xF]).To(Equal(uint8(1)))
		})
	})

	Describe("Random", func() {
		It("should mask the source byte with the immediate", func() {
			alu.Random(0x4, 0x0F)

			Expect(regFile.V[0x4]).To(Equal(uint8(0x05))) // 0xA5 & 0x0F
		})

		It("should produce zero under a zero mask", func() {
			alu.Random(0x4, 0x00)

			Expect(regFile.V[0x4]).To(Equal(uint8(0)))
		})
	})
})
