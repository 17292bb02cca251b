// Package compliance provides the assembled program corpus that
// validates interpreter behavior end to end.
package compliance

import "github.com/c8lab/c8sim/emu"

// GetPrograms returns the full corpus: one program per opcode family
// plus both profile expansions of every divergence probe.
func GetPrograms() []Program {
	programs := []Program{
		arithmeticCarry(),
		logicFamily(),
		compareSkips(),
		clearScreen(),
		drawCollide(),
		indexFamily(),
		bcdReadback(),
		callReturnNest(),
		randomMasked(),
		keySkipWait(),
		timerCountdown(),
		memoryWrap(),
	}
	for _, probe := range GetDivergenceProbes() {
		programs = append(programs, probe.Programs()...)
	}
	return programs
}

// DivergenceProbe pairs one source with the two quirks profiles whose
// behavior it separates.
type DivergenceProbe struct {
	// Name identifies the probe. The expanded programs append the
	// profile name.
	Name string

	// Description explains the quirk under test
	Description string

	// Source is the shared assembly text
	Source string

	// WantOriginal and WantModern list the register values expected
	// under each profile
	WantOriginal map[uint8]uint8
	WantModern   map[uint8]uint8

	// WantLitOriginal and WantLitModern are the expected lit pixel
	// counts under each profile
	WantLitOriginal int
	WantLitModern   int
}

// Programs expands the probe into one corpus program per profile,
// original first.
func (p DivergenceProbe) Programs() []Program {
	return []Program{
		{
			Name:        p.Name + "_original",
			Description: p.Description + " (original profile)",
			Source:      p.Source,
			Quirks:      emu.OriginalQuirks(),
			WantRegs:    p.WantOriginal,
			WantLit:     p.WantLitOriginal,
		},
		{
			Name:        p.Name + "_modern",
			Description: p.Description + " (modern profile)",
			Source:      p.Source,
			Quirks:      emu.ModernQuirks(),
			WantRegs:    p.WantModern,
			WantLit:     p.WantLitModern,
		},
	}
}

// GetDivergenceProbes returns one probe per quirk flag.
func GetDivergenceProbes() []DivergenceProbe {
	return []DivergenceProbe{
		shiftProbe(),
		logicFlagProbe(),
		jumpOffsetProbe(),
		blockTransferProbe(),
		drawEdgeProbe(),
	}
}

// 1. Arithmetic - immediate and register adds/subtracts with carry,
// borrow, and the flag-written-last rule when VF is the destination.
func arithmeticCarry() Program {
	return Program{
		Name:        "arithmetic_carry",
		Description: "add and subtract variants with carry, borrow and flag ordering",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD V0, 200
	ADD V0, 100     ; immediate add wraps without touching VF
	LD V1, 250
	LD V2, 10
	ADD V1, V2      ; 260 overflows: V1 = 4, VF = 1
	LD V3, 5
	LD V4, 7
	SUB V3, V4      ; borrow: V3 = 254, VF = 0
	LD V5, 9
	LD V6, 4
	SUBN V6, V5     ; V6 = V5 - V6 = 5, VF = 1
	LD VF, 200
	LD V7, 100
	ADD VF, V7      ; VF receives the carry, not the sum
	EXIT
`,
		WantRegs: map[uint8]uint8{
			0x0: 44, 0x1: 4, 0x2: 10, 0x3: 254, 0x5: 9, 0x6: 5, 0x7: 100, 0xF: 1,
		},
	}
}

// 2. Logic - register copy, OR, AND and XOR. The modern profile leaves
// VF alone; the flag-reset side is covered by its divergence probe.
func logicFamily() Program {
	return Program{
		Name:        "logic_family",
		Description: "register copy plus OR, AND, XOR results",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD V1, 0x0A
	LD V2, 0x0C
	LD V0, V2       ; register copy
	OR V0, V1       ; 0x0E
	LD V3, 0x0C
	AND V3, V1      ; 0x08
	LD V4, 0x0C
	XOR V4, V1      ; 0x06
	EXIT
`,
		WantRegs: map[uint8]uint8{
			0x0: 0x0E, 0x1: 0x0A, 0x2: 0x0C, 0x3: 0x08, 0x4: 0x06, 0xF: 0,
		},
	}
}

// 3. Compare skips - immediate and register forms of SE and SNE, taken
// and not taken.
func compareSkips() Program {
	return Program{
		Name:        "compare_skips",
		Description: "SE and SNE in both forms, each direction",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD V0, 5
	SE V0, 5        ; equal: skip
	LD V1, 0xFF
	SNE V0, 5       ; equal: fall through
	LD V2, 0x11
	LD V3, 5
	SE V0, V3       ; equal registers: skip
	LD V4, 0xFF
	SNE V0, V3      ; equal registers: fall through
	LD V5, 0x22
	SNE V0, 9       ; not equal: skip
	LD V6, 0xFF
	EXIT
`,
		WantRegs: map[uint8]uint8{
			0x1: 0, 0x2: 0x11, 0x4: 0, 0x5: 0x22, 0x6: 0,
		},
	}
}

// 4. Clear screen - CLS erases everything, so a redraw at the same
// spot lands collision free.
func clearScreen() Program {
	return Program{
		Name:        "clear_screen",
		Description: "CLS erases the display between identical draws",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD I, square
	LD V0, 4
	LD V1, 2
	DRW V0, V1, 1
	CLS
	DRW V0, V1, 1   ; redraw lands on a cleared screen: no collision
	EXIT
square:	DB 0xFF
`,
		WantRegs: map[uint8]uint8{0xF: 0},
		WantLit:  8,
	}
}

// 5. Draw and collide - XOR drawing sets VF exactly when an overlap
// erases pixels. The first bar is erased by the third draw, leaving
// only the second.
func drawCollide() Program {
	return Program{
		Name:        "draw_collide",
		Description: "sprite XOR with and without overlap, collision flag capture",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD I, bar
	LD V0, 0
	LD V1, 0
	DRW V0, V1, 1   ; fresh pixels: VF = 0
	LD V3, VF
	LD V2, 8
	DRW V2, V1, 1   ; disjoint columns: VF = 0
	LD V4, VF
	DRW V0, V1, 1   ; exact overlap erases the first bar: VF = 1
	EXIT
bar:	DB 0xFF
`,
		WantRegs: map[uint8]uint8{0x3: 0, 0x4: 0, 0xF: 1},
		WantLit:  8,
	}
}

// 6. Index family - ADD I stepping through a data table, a single
// register block load, and the built-in font via LD F.
func indexFamily() Program {
	return Program{
		Name:        "index_family",
		Description: "index arithmetic, table reads and font addressing",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD I, table
	LD V3, 2
	ADD I, V3       ; step the index into the table
	LD V0, [I]      ; single register load: V0 = table[2]
	LD V6, 7
	LD F, V6        ; point I at the 7 glyph
	LD V1, 10
	LD V2, 5
	DRW V1, V2, 5
	EXIT
table:	DB 0x98, 0x76, 0x5A, 0x32
`,
		WantRegs: map[uint8]uint8{0x0: 0x5A, 0x6: 7},
		// The 7 glyph has eight set bits across its five rows.
		WantLit: 8,
	}
}

// 7. BCD - store decimal digits, then read them back as a block.
func bcdReadback() Program {
	return Program{
		Name:        "bcd_readback",
		Description: "BCD store followed by a three register block load",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD V0, 237
	LD I, digits
	LD B, V0        ; hundreds, tens, ones at I
	LD V2, [I]      ; read the three digits back
	EXIT
digits:	DB 0, 0, 0
`,
		WantRegs: map[uint8]uint8{0x0: 2, 0x1: 3, 0x2: 7},
	}
}

// 8. Call and return - two level nesting accumulating into V0.
func callReturnNest() Program {
	return Program{
		Name:        "call_return_nest",
		Description: "nested CALL/RET pairs accumulating a result",
		Quirks:      emu.ModernQuirks(),
		Source: `
	CALL outer
	EXIT
outer:	LD V0, 1
	CALL inner
	ADD V0, 4
	RET
inner:	ADD V0, 2
	RET
`,
		WantRegs: map[uint8]uint8{0x0: 7},
	}
}

// 9. Random - with a fixed source byte the mask is the only variable.
func randomMasked() Program {
	return Program{
		Name:        "random_masked",
		Description: "RND masking against a fixed random source",
		Quirks:      emu.ModernQuirks(),
		Rand:        func() byte { return 0x5A },
		Source: `
	RND V0, 0xFF    ; full mask passes the source byte through
	RND V1, 0x0F
	RND V2, 0x00    ; zero mask always lands 0
	EXIT
`,
		WantRegs: map[uint8]uint8{0x0: 0x5A, 0x1: 0x0A, 0x2: 0},
	}
}

// 10. Keys - SKP, SKNP and the key wait against a held key.
func keySkipWait() Program {
	return Program{
		Name:        "key_skip_wait",
		Description: "key skips and key wait with key 7 held",
		Quirks:      emu.ModernQuirks(),
		Setup: func(e *emu.Emulator) {
			e.Keypad().SetKey(7, true)
		},
		Source: `
	LD V0, 7
	SKP V0          ; key 7 is held: skip
	LD V1, 0xFF
	SKNP V0         ; key 7 is held: fall through
	LD V2, 0x11
	LD V3, K        ; resolves immediately to the held key
	EXIT
`,
		WantRegs: map[uint8]uint8{0x1: 0, 0x2: 0x11, 0x3: 7},
	}
}

// 11. Timers - the delay timer counts down at the tick cadence while
// the program polls it; the sound timer outlives the short run.
func timerCountdown() Program {
	return Program{
		Name:        "timer_countdown",
		Description: "delay timer polling loop with the sound timer running",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD V0, 3
	LD DT, V0
	LD V1, 60
	LD ST, V1
wait:	LD V2, DT
	SE V2, 0
	JP wait
	EXIT
`,
		WantRegs:  map[uint8]uint8{0x0: 3, 0x1: 60, 0x2: 0},
		WantSound: true,
	}
}

// 12. Memory wrap - the index at the last byte of memory reads data
// placed there by ORG, and sprite rows wrap around into the font area.
func memoryWrap() Program {
	return Program{
		Name:        "memory_wrap",
		Description: "reads at the top of memory wrap to the font base",
		Quirks:      emu.ModernQuirks(),
		Source: `
	LD I, 0xFFF
	LD V0, [I]      ; last byte of memory
	LD V1, 0
	LD V2, 0
	DRW V1, V2, 2   ; second sprite row wraps to address zero
	EXIT
	ORG 0xFFF
	DB 0xA5
`,
		WantRegs: map[uint8]uint8{0x0: 0xA5},
		// Row one is 0xA5, row two the first font byte 0xF0: four set
		// bits each.
		WantLit: 8,
	}
}

// Probe 1: 8xy6/8xyE shift source register.
func shiftProbe() DivergenceProbe {
	return DivergenceProbe{
		Name:        "shift_source",
		Description: "shifts read Vy on the original profile, Vx on the modern one",
		Source: `
	LD V1, 0x81
	LD V2, 0x04
	SHR V2, V1
	LD V3, 0x81
	LD V4, 0x22
	SHL V4, V3
	EXIT
`,
		WantOriginal: map[uint8]uint8{0x2: 0x40, 0x4: 0x02, 0xF: 1},
		WantModern:   map[uint8]uint8{0x2: 0x02, 0x4: 0x44, 0xF: 0},
	}
}

// Probe 2: 8xy1/2/3 flag reset.
func logicFlagProbe() DivergenceProbe {
	return DivergenceProbe{
		Name:        "logic_flag",
		Description: "logic ops clear VF on the original profile only",
		Source: `
	LD VF, 1
	LD V1, 0x0C
	LD V2, 0x0A
	OR V1, V2
	EXIT
`,
		WantOriginal: map[uint8]uint8{0x1: 0x0E, 0xF: 0},
		WantModern:   map[uint8]uint8{0x1: 0x0E, 0xF: 1},
	}
}

// Probe 3: Bnnn offset register. The indexed jump targets 0x208 and
// adds V0 (original) or V2 (modern), so the profiles land on different
// LD V5 instructions.
func jumpOffsetProbe() DivergenceProbe {
	return DivergenceProbe{
		Name:        "jump_offset",
		Description: "indexed jump adds V0 on the original profile, Vx on the modern one",
		Source: `
	LD V0, 2
	LD V2, 6
	JP V2, 0x08     ; indexed jump, base 0x208
	EXIT
	EXIT            ; base landing for a zero offset
	LD V5, 0x11     ; landing with the V0 offset
	EXIT
	LD V5, 0x22     ; landing with the V2 offset
	EXIT
`,
		WantOriginal: map[uint8]uint8{0x5: 0x11},
		WantModern:   map[uint8]uint8{0x5: 0x22},
	}
}

// Probe 4: Fx55/Fx65 index increment. When the store advances I, the
// readback sees the zeroed bytes past the block instead of the stored
// values.
func blockTransferProbe() DivergenceProbe {
	return DivergenceProbe{
		Name:        "block_transfer",
		Description: "block store and load advance I on the original profile only",
		Source: `
	LD V0, 1
	LD V1, 2
	LD V2, 3
	LD I, buffer
	LD [I], V2      ; store V0..V2
	LD V2, [I]      ; read back through the same index
	EXIT
buffer:	DB 0, 0, 0, 0, 0, 0
`,
		WantOriginal: map[uint8]uint8{0x0: 0, 0x1: 0, 0x2: 0},
		WantModern:   map[uint8]uint8{0x0: 1, 0x1: 2, 0x2: 3},
	}
}

// Probe 5: Dxyn edge behavior. Four of the eight sprite pixels start
// past the right edge.
func drawEdgeProbe() DivergenceProbe {
	return DivergenceProbe{
		Name:        "draw_edge",
		Description: "sprites clip at the edge on the original profile, wrap on the modern one",
		Source: `
	LD I, edge
	LD V0, 60
	LD V1, 0
	DRW V0, V1, 1
	EXIT
edge:	DB 0xFF
`,
		WantOriginal:    map[uint8]uint8{0xF: 0},
		WantModern:      map[uint8]uint8{0xF: 0},
		WantLitOriginal: 4,
		WantLitModern:   8,
	}
}
