// Package emu provides functional CHIP-8 emulation.
package emu

import "strings"

// Quirks selects among historically divergent opcode behaviors.
// A profile is immutable once constructed and referenced, not owned,
// by every instruction execution. Two profiles are equal iff every
// flag matches, so plain == comparison is the equality contract.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE shift Vy into Vx instead of
	// shifting Vx in place.
	ShiftUsesVY bool

	// LoadStoreIncrementsIndex makes Fx55/Fx65 advance the index
	// register past the transferred block.
	LoadStoreIncrementsIndex bool

	// JumpWithVX makes Bnnn add Vx (x = high nibble of the target)
	// instead of V0.
	JumpWithVX bool

	// DrawWraps wraps sprite pixels at the display edges instead of
	// clipping them.
	DrawWraps bool

	// ResetFlagOnLogic makes 8xy1/8xy2/8xy3 clear the flag register.
	ResetFlagOnLogic bool
}

// OriginalQuirks returns the behavior of the original COSMAC VIP
// interpreter.
func OriginalQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:              true,
		LoadStoreIncrementsIndex: true,
		JumpWithVX:               false,
		DrawWraps:                false,
		ResetFlagOnLogic:         true,
	}
}

// ModernQuirks returns the behavior most later interpreters settled on.
func ModernQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:              false,
		LoadStoreIncrementsIndex: false,
		JumpWithVX:               true,
		DrawWraps:                true,
		ResetFlagOnLogic:         false,
	}
}

// QuirksByName resolves a named preset. Names are case-insensitive and
// surrounding whitespace is ignored. Unrecognized names fail with
// UnknownProfileError.
func QuirksByName(name string) (Quirks, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(name)); normalized {
	case "original":
		return OriginalQuirks(), nil
	case "modern":
		return ModernQuirks(), nil
	default:
		return Quirks{}, &UnknownProfileError{Name: normalized}
	}
}
