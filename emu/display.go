// Package emu provides functional CHIP-8 emulation.
package emu

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome frame buffer. Sprite draws XOR
// pixels into it and report collisions. The buffer provides no internal
// synchronization; a concurrent host must render from a Snapshot taken
// under its own locking.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel reports whether the pixel at (x, y) is lit.
// Coordinates outside the grid wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y%DisplayHeight][x%DisplayWidth]
}

// DrawSprite XORs sprite rows into the buffer at (x, y) and reports
// whether any lit pixel was erased. Start coordinates always wrap into
// the grid; pixels past the right or bottom edge wrap or clip per the
// wrap argument. Each row is eight pixels wide, most significant bit
// leftmost.
func (d *Display) DrawSprite(x, y uint8, rows []byte, wrap bool) bool {
	startX := int(x) % DisplayWidth
	startY := int(y) % DisplayHeight
	collision := false

	for r, row := range rows {
		py := startY + r
		if py >= DisplayHeight {
			if !wrap {
				break
			}
			py %= DisplayHeight
		}

		for bit := 0; bit < 8; bit++ {
			if row&(0x80>>bit) == 0 {
				continue
			}
			px := startX + bit
			if px >= DisplayWidth {
				if !wrap {
					break
				}
				px %= DisplayWidth
			}

			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	return collision
}

// Snapshot returns a copy of the frame buffer for host-side rendering.
func (d *Display) Snapshot() [DisplayHeight][DisplayWidth]bool {
	return d.pixels
}

// LitCount returns the number of lit pixels.
func (d *Display) LitCount() int {
	count := 0
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				count++
			}
		}
	}
	return count
}

// String renders the frame buffer as text, one character per pixel.
func (d *Display) String() string {
	var b strings.Builder
	b.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
