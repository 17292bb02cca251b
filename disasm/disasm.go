// Package disasm renders CHIP-8 machine code as assembly listings.
package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// exitWord is the interpreter stop instruction. It is not part of the
// shared opcode tables, so it is matched before the table lookup.
const exitWord = 0x00FD

// Disassembler renders ROM images as flat listings, one line per word.
// It does not follow control flow; data words render as directives that
// reassemble to the same bytes.
type Disassembler struct {
	origin uint16
}

// New creates a disassembler that labels addresses starting at origin.
// Programs conventionally start at 0x200.
func New(origin uint16) *Disassembler {
	return &Disassembler{origin: origin}
}

// Word renders one instruction word. ok is false for words that do not
// decode to an executable instruction; those belong in data directives.
func (d *Disassembler) Word(word uint16) (string, bool) {
	if word == exitWord {
		return "exit", true
	}

	ins := lookup(word)
	if ins == nil {
		return "", false
	}

	params, ok := formatParams(ins.Name, word)
	if !ok {
		return "", false
	}
	if params == "" {
		return ins.Name, true
	}
	return ins.Name + " " + params, true
}

// Listing renders the whole image. Each word becomes a line of the form
//
//	0x200: 6A02  ld VA, $02
//
// with unknown words as dw directives and an odd trailing byte as db.
func (d *Disassembler) Listing(image []byte) string {
	var b strings.Builder
	addr := d.origin

	for i := 0; i+1 < len(image); i += 2 {
		word := uint16(image[i])<<8 | uint16(image[i+1])
		text, ok := d.Word(word)
		if !ok {
			text = fmt.Sprintf("dw $%04X", word)
		}
		fmt.Fprintf(&b, "0x%03X: %04X  %s\n", addr, word, text)
		addr += 2
	}

	if len(image)%2 != 0 {
		last := image[len(image)-1]
		fmt.Fprintf(&b, "0x%03X: %02X    db $%02X\n", addr, last, last)
	}

	return b.String()
}

// lookup finds the opcode table entry matching word.
func lookup(word uint16) *chip8.Instruction {
	opcodes := chip8.Opcodes[int(word>>12)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// formatParams builds the operand text for a named instruction. ok is
// false when the word is not a form the assembler can reproduce.
func formatParams(name string, word uint16) (string, bool) {
	x := registerX(word)

	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return "", true
	case chip8.Jp.Name:
		return formatJump(word)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", word&0x0FFF), true
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompare(word)
	case chip8.Ld.Name:
		return formatLoad(word)
	case chip8.Add.Name:
		return formatAdd(word)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", x, registerY(word)), true
	case chip8.Shr.Name, chip8.Shl.Name:
		// Both registers are kept so asymmetric shift encodings
		// survive a reassembly round trip.
		return fmt.Sprintf("V%X, V%X", x, registerY(word)), true
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF), true
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, registerY(word), word&0x000F), true
	case chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", x), true
	}

	return "", false
}

// formatJump covers the direct and the indexed jump. The indexed form
// names the register whose number is the high nibble of the target,
// matching the assembler's JP Vx, nn form.
func formatJump(word uint16) (string, bool) {
	switch word & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", word&0x0FFF), true
	case 0xB000:
		return fmt.Sprintf("V%X, $%02X", registerX(word), word&0x00FF), true
	}
	return "", false
}

func formatCompare(word uint16) (string, bool) {
	x := registerX(word)
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF), true
	case 0x5000, 0x9000:
		if word&0x000F != 0 {
			return "", false
		}
		return fmt.Sprintf("V%X, V%X", x, registerY(word)), true
	}
	return "", false
}

func formatLoad(word uint16) (string, bool) {
	x := registerX(word)

	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF), true
	case 0x8000:
		if word&0x000F != 0 {
			return "", false
		}
		return fmt.Sprintf("V%X, V%X", x, registerY(word)), true
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF), true
	case 0xF000:
		switch word & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x), true
		case 0x0A:
			return fmt.Sprintf("V%X, K", x), true
		case 0x15:
			return fmt.Sprintf("DT, V%X", x), true
		case 0x18:
			return fmt.Sprintf("ST, V%X", x), true
		case 0x29:
			return fmt.Sprintf("F, V%X", x), true
		case 0x33:
			return fmt.Sprintf("B, V%X", x), true
		case 0x55:
			return fmt.Sprintf("[I], V%X", x), true
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x), true
		}
	}

	return "", false
}

func formatAdd(word uint16) (string, bool) {
	x := registerX(word)

	switch word & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF), true
	case 0x8000:
		if word&0x000F != 0x4 {
			return "", false
		}
		return fmt.Sprintf("V%X, V%X", x, registerY(word)), true
	case 0xF000:
		if word&0x00FF != 0x1E {
			return "", false
		}
		return fmt.Sprintf("I, V%X", x), true
	}

	return "", false
}

func registerX(word uint16) uint16 {
	return word >> 8 & 0x0F
}

func registerY(word uint16) uint16 {
	return word >> 4 & 0x0F
}
