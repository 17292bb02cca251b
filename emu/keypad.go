// Package emu provides functional CHIP-8 emulation.
package emu

// NumKeys is the number of keys on the hexadecimal keypad.
const NumKeys = 16

// Keypad holds the sixteen key-down flags. The host sets and clears
// them before each driver call; the engine only reads them.
type Keypad struct {
	down [NumKeys]bool
}

// SetKey records a key transition. The index must be below NumKeys.
func (k *Keypad) SetKey(key uint8, down bool) {
	k.down[key] = down
}

// Down reports whether a key is held.
func (k *Keypad) Down(key uint8) bool {
	return k.down[key]
}

// AnyDown returns the lowest-numbered held key.
func (k *Keypad) AnyDown() (uint8, bool) {
	for i, down := range k.down {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Reset releases every key.
func (k *Keypad) Reset() {
	*k = Keypad{}
}
