package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("Keypad", func() {
	var keypad *emu.Keypad

	BeforeEach(func() {
		keypad = &emu.Keypad{}
	})

	It("should start with every key up", func() {
		for key := uint8(0); key < emu.NumKeys; key++ {
			Expect(keypad.Down(key)).To(BeFalse())
		}
	})

	It("should track presses and releases", func() {
		keypad.SetKey(0xA, true)
		Expect(keypad.Down(0xA)).To(BeTrue())

		keypad.SetKey(0xA, false)
		Expect(keypad.Down(0xA)).To(BeFalse())
	})

	Describe("AnyDown", func() {
		It("should report nothing when all keys are up", func() {
			_, ok := keypad.AnyDown()

			Expect(ok).To(BeFalse())
		})

		It("should return the lowest-numbered held key", func() {
			keypad.SetKey(0xE, true)
			keypad.SetKey(0x5, true)

			key, ok := keypad.AnyDown()

			Expect(ok).To(BeTrue())
			Expect(key).To(Equal(uint8(0x5)))
		})
	})

	Describe("Reset", func() {
		It("should release every key", func() {
			keypad.SetKey(0x0, true)
			keypad.SetKey(0xF, true)

			keypad.Reset()

			_, ok := keypad.AnyDown()
			Expect(ok).To(BeFalse())
		})
	})
})
