// Package app provides the interactive ebiten front end.
// It owns the window loop; the machine itself is paced by the timing
// core it wraps.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/c8lab/c8sim/emu"
	"github.com/c8lab/c8sim/timing/core"
)

// keyMap lays the CHIP-8 4x4 pad over the left of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keyMap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// pixelColors returns the foreground and background colors. The
// foreground warms up while the buzzer is on, which is the only audio
// feedback there is.
func pixelColors(sound bool) (fg, bg color.RGBA) {
	bg = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
	fg = color.RGBA{R: 0x9C, G: 0xE5, B: 0x9C, A: 0xFF}
	if sound {
		fg = color.RGBA{R: 0xE5, G: 0xC8, B: 0x6E, A: 0xFF}
	}
	return fg, bg
}

// renderFrame fills dst with RGBA pixels for the given frame buffer
// snapshot. dst must hold DisplayWidth*DisplayHeight*4 bytes.
func renderFrame(dst []byte, snapshot *[emu.DisplayHeight][emu.DisplayWidth]bool, sound bool) {
	fg, bg := pixelColors(sound)

	i := 0
	for y := range snapshot {
		for x := range snapshot[y] {
			c := bg
			if snapshot[y][x] {
				c = fg
			}
			dst[i+0] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = c.A
			i += 4
		}
	}
}

// App drives a timed core from the ebiten game loop.
type App struct {
	core  *core.Core
	title string
	scale int

	frame     *ebiten.Image
	pixels    []byte
	lastFrame time.Time
}

// AppOption is a functional option for configuring the App.
type AppOption func(*App)

// WithTitle sets the window title.
func WithTitle(title string) AppOption {
	return func(a *App) {
		a.title = title
	}
}

// WithScale sets the window size as a multiple of the 64x32 display.
// Non-positive values keep the default.
func WithScale(scale int) AppOption {
	return func(a *App) {
		if scale > 0 {
			a.scale = scale
		}
	}
}

// NewApp creates a front end driving the given core.
func NewApp(c *core.Core, opts ...AppOption) *App {
	a := &App{
		core:  c,
		title: "c8sim",
		scale: 10,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Update polls the keypad and advances the machine by the wall-clock
// time since the previous frame. It ends the loop when the program
// exits and surfaces any machine fault.
func (a *App) Update() error {
	keypad := a.core.Emulator().Keypad()
	for key, pad := range keyMap {
		keypad.SetKey(pad, ebiten.IsKeyPressed(key))
	}

	now := time.Now()
	if a.lastFrame.IsZero() {
		a.lastFrame = now
	}
	elapsed := now.Sub(a.lastFrame).Seconds()
	a.lastFrame = now

	if err := a.core.StepFrame(elapsed); err != nil {
		return fmt.Errorf("emulation fault: %w", err)
	}
	if a.core.Exited() {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the frame buffer to the screen.
func (a *App) Draw(screen *ebiten.Image) {
	if a.frame == nil {
		a.frame = ebiten.NewImage(emu.DisplayWidth, emu.DisplayHeight)
		a.pixels = make([]byte, emu.DisplayWidth*emu.DisplayHeight*4)
	}

	snapshot := a.core.Emulator().Display().Snapshot()
	renderFrame(a.pixels, &snapshot, a.core.Emulator().SoundActive())

	a.frame.WritePixels(a.pixels)
	screen.DrawImage(a.frame, nil)
}

// Layout fixes the logical resolution at the machine's display size;
// ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return emu.DisplayWidth, emu.DisplayHeight
}

// Run opens the window and drives the loop until the program exits,
// the window closes, or the machine faults.
func (a *App) Run() error {
	ebiten.SetWindowSize(emu.DisplayWidth*a.scale, emu.DisplayHeight*a.scale)
	ebiten.SetWindowTitle(a.title)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
