package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		regFile.Reset()
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("Jump", func() {
		It("should set PC to the target", func() {
			branchUnit.Jump(0x345)

			Expect(regFile.PC).To(Equal(uint16(0x345)))
		})

		It("should mask the target into memory bounds", func() {
			branchUnit.Jump(0xF345)

			Expect(regFile.PC).To(Equal(uint16(0x345)))
		})
	})

	Describe("JumpOffset", func() {
		It("should offset by V0 without the jump quirk", func() {
			regFile.V[0x0] = 0x10
			regFile.V[0x2] = 0xFF

			branchUnit.JumpOffset(0x2, 0x234, emu.Quirks{})

			Expect(regFile.PC).To(Equal(uint16(0x244)))
		})

		It("should offset by Vx under the jump quirk", func() {
			regFile.V[0x0] = 0xFF
			regFile.V[0x2] = 0x10

			branchUnit.JumpOffset(0x2, 0x234, emu.Quirks{JumpWithVX: true})

			Expect(regFile.PC).To(Equal(uint16(0x244)))
		})

		It("should wrap the offset target", func() {
			regFile.V[0x0] = 0x10

			branchUnit.JumpOffset(0x0, 0xFF8, emu.Quirks{})

			Expect(regFile.PC).To(Equal(uint16(0x008)))
		})
	})

	Describe("Call and Return", func() {
		It("should push the return address and branch", func() {
			regFile.PC = 0x202 // already advanced past the call word

			Expect(branchUnit.Call(0x400)).To(Succeed())

			Expect(regFile.PC).To(Equal(uint16(0x400)))
			Expect(regFile.SP).To(Equal(uint8(1)))

			Expect(branchUnit.Return()).To(Succeed())

			Expect(regFile.PC).To(Equal(uint16(0x202)))
			Expect(regFile.SP).To(Equal(uint8(0)))
		})

		It("should nest to the full stack depth", func() {
			for i := 0; i < emu.StackDepth; i++ {
				Expect(branchUnit.Call(uint16(0x300 + 2*i))).To(Succeed())
			}

			Expect(regFile.SP).To(Equal(uint8(emu.StackDepth)))

			for i := 0; i < emu.StackDepth; i++ {
				Expect(branchUnit.Return()).To(Succeed())
			}

			Expect(regFile.SP).To(Equal(uint8(0)))
		})

		It("should fail the call past the stack depth and leave PC alone", func() {
			for i := 0; i < emu.StackDepth; i++ {
				Expect(branchUnit.Call(0x300)).To(Succeed())
			}
			before := regFile.PC

			Expect(branchUnit.Call(0x400)).To(MatchError(emu.ErrStackOverflow))
			Expect(regFile.PC).To(Equal(before))
		})

		It("should fail the return on an empty stack", func() {
			before := regFile.PC

			Expect(branchUnit.Return()).To(MatchError(emu.ErrStackUnderflow))
			Expect(regFile.PC).To(Equal(before))
		})
	})

	Describe("Skip", func() {
		It("should advance PC by one word", func() {
			branchUnit.Skip()

			Expect(regFile.PC).To(Equal(uint16(0x202)))
		})
	})

	Describe("SkipIf", func() {
		It("should advance only when the condition holds", func() {
			branchUnit.SkipIf(false)
			Expect(regFile.PC).To(Equal(uint16(0x200)))

			branchUnit.SkipIf(true)
			Expect(regFile.PC).To(Equal(uint16(0x202)))
		})
	})

	Describe("Refetch", func() {
		It("should rewind PC by one word", func() {
			regFile.PC = 0x202

			branchUnit.Refetch()

			Expect(regFile.PC).To(Equal(uint16(0x200)))
		})

		It("should wrap below address zero", func() {
			regFile.PC = 0x000

			branchUnit.Refetch()

			Expect(regFile.PC).To(Equal(uint16(emu.MemorySize - 2)))
		})
	})
})
