package emu_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/c8lab/c8sim/emu"
)

var _ = Describe("Display", func() {
	var display *emu.Display

	BeforeEach(func() {
		display = &emu.Display{}
	})

	Describe("DrawSprite", func() {
		It("should set pixels from sprite rows, high bit leftmost", func() {
			collision := display.DrawSprite(0, 0, []byte{0b1010_0000}, true)

			Expect(collision).To(BeFalse())
			Expect(display.Pixel(0, 0)).To(BeTrue())
			Expect(display.Pixel(1, 0)).To(BeFalse())
			Expect(display.Pixel(2, 0)).To(BeTrue())
			Expect(display.Pixel(3, 0)).To(BeFalse())
		})

		It("should place rows on consecutive lines", func() {
			display.DrawSprite(4, 2, []byte{0x80, 0x80, 0x80}, true)

			Expect(display.Pixel(4, 2)).To(BeTrue())
			Expect(display.Pixel(4, 3)).To(BeTrue())
			Expect(display.Pixel(4, 4)).To(BeTrue())
			Expect(display.LitCount()).To(Equal(3))
		})

		It("should erase on redraw and report the collision", func() {
			Expect(display.DrawSprite(0, 0, []byte{0xFF}, true)).To(BeFalse())

			collision := display.DrawSprite(0, 0, []byte{0xFF}, true)

			Expect(collision).To(BeTrue())
			Expect(display.LitCount()).To(Equal(0))
		})

		It("should report collision when any single pixel turns off", func() {
			display.DrawSprite(0, 0, []byte{0b1000_0000}, true)

			collision := display.DrawSprite(0, 0, []byte{0b1100_0000}, true)

			Expect(collision).To(BeTrue())
			Expect(display.Pixel(0, 0)).To(BeFalse())
			Expect(display.Pixel(1, 0)).To(BeTrue())
		})

		It("should wrap start coordinates into the display", func() {
			display.DrawSprite(64, 32, []byte{0x80}, true)

			Expect(display.Pixel(0, 0)).To(BeTrue())
		})

		It("should wrap overhanging pixels when wrapping is on", func() {
			display.DrawSprite(62, 31, []byte{0b1111_0000, 0b1111_0000}, true)

			// Row 0 wraps x 62,63,0,1 on line 31; row 1 wraps to line 0.
			Expect(display.Pixel(62, 31)).To(BeTrue())
			Expect(display.Pixel(63, 31)).To(BeTrue())
			Expect(display.Pixel(0, 31)).To(BeTrue())
			Expect(display.Pixel(1, 31)).To(BeTrue())
			Expect(display.Pixel(62, 0)).To(BeTrue())
			Expect(display.Pixel(1, 0)).To(BeTrue())
			Expect(display.LitCount()).To(Equal(8))
		})

		It("should clip overhanging pixels when wrapping is off", func() {
			display.DrawSprite(62, 31, []byte{0b1111_0000, 0b1111_0000}, false)

			Expect(display.Pixel(62, 31)).To(BeTrue())
			Expect(display.Pixel(63, 31)).To(BeTrue())
			Expect(display.Pixel(0, 31)).To(BeFalse())
			Expect(display.Pixel(62, 0)).To(BeFalse())
			Expect(display.LitCount()).To(Equal(2))
		})

		It("should handle an empty sprite", func() {
			collision := display.DrawSprite(10, 10, nil, true)

			Expect(collision).To(BeFalse())
			Expect(display.LitCount()).To(Equal(0))
		})
	})

	Describe("Clear", func() {
		It("should turn every pixel off", func() {
			display.DrawSprite(0, 0, []byte{0xFF, 0xFF}, true)

			display.Clear()

			Expect(display.LitCount()).To(Equal(0))
		})
	})

	Describe("Pixel", func() {
		It("should wrap out-of-range queries", func() {
			display.DrawSprite(0, 0, []byte{0x80}, true)

			Expect(display.Pixel(64, 32)).To(BeTrue())
		})
	})

	Describe("Snapshot", func() {
		It("should copy the framebuffer, not alias it", func() {
			display.DrawSprite(0, 0, []byte{0x80}, true)

			snap := display.Snapshot()
			display.Clear()

			Expect(snap[0][0]).To(BeTrue())
			Expect(display.Pixel(0, 0)).To(BeFalse())
		})
	})

	Describe("String", func() {
		It("should render one line per row", func() {
			display.DrawSprite(0, 0, []byte{0b1010_0000}, true)

			lines := strings.Split(strings.TrimRight(display.String(), "\n"), "\n")

			Expect(lines).To(HaveLen(emu.DisplayHeight))
			Expect(lines[0]).To(HavePrefix("#.#."))
			Expect(lines[0]).To(HaveLen(emu.DisplayWidth))
		})
	})
})
