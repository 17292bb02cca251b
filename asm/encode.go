// Package asm provides a two-pass assembler for CHIP-8 mnemonic source.
package asm

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseNumeric parses a bare numeric literal: decimal, 0x or $ hex,
// 0b binary, 0o octal, or a quoted character.
func parseNumeric(token string, line int) (int, error) {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(t, "$") {
		t = "0x" + t[1:]
	}

	if r, ok := charLiteral(t); ok {
		return int(r), nil
	}

	base := 10
	digits := t
	lower := strings.ToLower(t)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, digits = 16, t[2:]
	case strings.HasPrefix(lower, "0b"):
		base, digits = 2, t[2:]
	case strings.HasPrefix(lower, "0o"):
		base, digits = 8, t[2:]
	}

	v, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, errorf(line, "invalid value %q", token)
	}
	return int(v), nil
}

// charLiteral recognizes 'c' tokens holding exactly one character.
func charLiteral(token string) (rune, bool) {
	if len(token) < 3 || token[0] != '\'' || token[len(token)-1] != '\'' {
		return 0, false
	}
	inner := token[1 : len(token)-1]
	r, size := utf8.DecodeRuneInString(inner)
	if size != len(inner) {
		return 0, false
	}
	return r, true
}

// parseValue resolves a token against the label table, falling back to
// a numeric literal. Labels are case-sensitive.
func parseValue(token string, labels map[string]int, line int) (int, error) {
	t := strings.TrimSpace(token)
	if addr, ok := labels[t]; ok {
		return addr, nil
	}
	return parseNumeric(t, line)
}

func ensureRange(value, minimum, maximum int, what string, line int) error {
	if value < minimum || value > maximum {
		return errorf(line, "%s out of range: %d (expected %d..%d)", what, value, minimum, maximum)
	}
	return nil
}

// parseRegister accepts V0..VF in hex form and V0..V15 in decimal form.
func parseRegister(token string, line int) (uint16, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if !strings.HasPrefix(t, "V") || len(t) < 2 {
		return 0, errorf(line, "expected register, got %q", token)
	}

	rest := t[1:]
	if len(rest) == 1 {
		if v, err := strconv.ParseUint(rest, 16, 8); err == nil {
			return uint16(v), nil
		}
	}
	if v, err := strconv.ParseUint(rest, 10, 8); err == nil && v <= 15 {
		return uint16(v), nil
	}

	return 0, errorf(line, "invalid register %q", token)
}

func isRegister(token string) bool {
	_, err := parseRegister(token, 0)
	return err == nil
}

func expectArgs(op string, args []string, want, line int) error {
	if len(args) != want {
		return errorf(line, "%s expects %d argument(s), got %d", op, want, len(args))
	}
	return nil
}

// encodeInstruction turns one mnemonic statement into its 16-bit word.
// The operand forms select the encoding, so LD and ADD cover several
// opcode groups each.
func encodeInstruction(op string, args []string, labels map[string]int, line int) (uint16, error) {
	switch op {
	case "CLS":
		if err := expectArgs(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00E0, nil

	case "RET":
		if err := expectArgs(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00EE, nil

	case "EXIT":
		if err := expectArgs(op, args, 0, line); err != nil {
			return 0, err
		}
		return 0x00FD, nil

	case "JP":
		switch len(args) {
		case 1:
			addr, err := parseValue(args[0], labels, line)
			if err != nil {
				return 0, err
			}
			if err := ensureRange(addr, 0, 0x0FFF, "address", line); err != nil {
				return 0, err
			}
			return 0x1000 | uint16(addr), nil
		case 2:
			// JP Vx, nn assembles the indexed jump: the register
			// number forms the high nibble of the target.
			x, err := parseRegister(args[0], line)
			if err != nil {
				return 0, err
			}
			nn, err := parseValue(args[1], labels, line)
			if err != nil {
				return 0, err
			}
			if err := ensureRange(nn, 0, 0x00FF, "byte", line); err != nil {
				return 0, err
			}
			return 0xB000 | x<<8 | uint16(nn), nil
		}
		return 0, errorf(line, "JP expects one or two arguments")

	case "CALL":
		if err := expectArgs(op, args, 1, line); err != nil {
			return 0, err
		}
		addr, err := parseValue(args[0], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(addr, 0, 0x0FFF, "address", line); err != nil {
			return 0, err
		}
		return 0x2000 | uint16(addr), nil

	case "SE", "SNE":
		if err := expectArgs(op, args, 2, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		if isRegister(args[1]) {
			y, err := parseRegister(args[1], line)
			if err != nil {
				return 0, err
			}
			if op == "SE" {
				return 0x5000 | x<<8 | y<<4, nil
			}
			return 0x9000 | x<<8 | y<<4, nil
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0x00FF, "byte", line); err != nil {
			return 0, err
		}
		if op == "SE" {
			return 0x3000 | x<<8 | uint16(nn), nil
		}
		return 0x4000 | x<<8 | uint16(nn), nil

	case "LD":
		return encodeLoad(args, labels, line)

	case "ADD":
		if err := expectArgs(op, args, 2, line); err != nil {
			return 0, err
		}
		if strings.ToUpper(strings.TrimSpace(args[0])) == "I" {
			x, err := parseRegister(args[1], line)
			if err != nil {
				return 0, err
			}
			return 0xF01E | x<<8, nil
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		if isRegister(args[1]) {
			y, err := parseRegister(args[1], line)
			if err != nil {
				return 0, err
			}
			return 0x8004 | x<<8 | y<<4, nil
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0x00FF, "byte", line); err != nil {
			return 0, err
		}
		return 0x7000 | x<<8 | uint16(nn), nil

	case "OR", "AND", "XOR", "SUB", "SUBN":
		if err := expectArgs(op, args, 2, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		var tail uint16
		switch op {
		case "OR":
			tail = 0x1
		case "AND":
			tail = 0x2
		case "XOR":
			tail = 0x3
		case "SUB":
			tail = 0x5
		case "SUBN":
			tail = 0x7
		}
		return 0x8000 | x<<8 | y<<4 | tail, nil

	case "SHR", "SHL":
		if len(args) != 1 && len(args) != 2 {
			return 0, errorf(line, "%s expects one or two arguments", op)
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		y := x
		if len(args) == 2 {
			y, err = parseRegister(args[1], line)
			if err != nil {
				return 0, err
			}
		}
		if op == "SHR" {
			return 0x8006 | x<<8 | y<<4, nil
		}
		return 0x800E | x<<8 | y<<4, nil

	case "RND":
		if err := expectArgs(op, args, 2, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0x00FF, "byte", line); err != nil {
			return 0, err
		}
		return 0xC000 | x<<8 | uint16(nn), nil

	case "DRW":
		if err := expectArgs(op, args, 3, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		y, err := parseRegister(args[1], line)
		if err != nil {
			return 0, err
		}
		n, err := parseValue(args[2], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(n, 0, 0x000F, "nibble", line); err != nil {
			return 0, err
		}
		return 0xD000 | x<<8 | y<<4 | uint16(n), nil

	case "SKP":
		if err := expectArgs(op, args, 1, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		return 0xE09E | x<<8, nil

	case "SKNP":
		if err := expectArgs(op, args, 1, line); err != nil {
			return 0, err
		}
		x, err := parseRegister(args[0], line)
		if err != nil {
			return 0, err
		}
		return 0xE0A1 | x<<8, nil
	}

	return 0, errorf(line, "unknown instruction %q", op)
}

// encodeLoad handles the many LD forms. The destination decides the
// opcode group, then the source picks the exact encoding.
func encodeLoad(args []string, labels map[string]int, line int) (uint16, error) {
	if err := expectArgs("LD", args, 2, line); err != nil {
		return 0, err
	}
	dst := strings.ToUpper(strings.TrimSpace(args[0]))
	src := strings.ToUpper(strings.TrimSpace(args[1]))

	if isRegister(dst) {
		x, err := parseRegister(dst, line)
		if err != nil {
			return 0, err
		}
		switch {
		case isRegister(src):
			y, err := parseRegister(src, line)
			if err != nil {
				return 0, err
			}
			return 0x8000 | x<<8 | y<<4, nil
		case src == "DT":
			return 0xF007 | x<<8, nil
		case src == "K":
			return 0xF00A | x<<8, nil
		case src == "[I]":
			return 0xF065 | x<<8, nil
		}
		nn, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(nn, 0, 0x00FF, "byte", line); err != nil {
			return 0, err
		}
		return 0x6000 | x<<8 | uint16(nn), nil
	}

	if dst == "I" {
		addr, err := parseValue(args[1], labels, line)
		if err != nil {
			return 0, err
		}
		if err := ensureRange(addr, 0, 0x0FFF, "address", line); err != nil {
			return 0, err
		}
		return 0xA000 | uint16(addr), nil
	}

	var base uint16
	switch dst {
	case "DT":
		base = 0xF015
	case "ST":
		base = 0xF018
	case "F":
		base = 0xF029
	case "B":
		base = 0xF033
	case "[I]":
		base = 0xF055
	default:
		return 0, errorf(line, "unsupported LD form: %s, %s",
			strings.TrimSpace(args[0]), strings.TrimSpace(args[1]))
	}

	x, err := parseRegister(args[1], line)
	if err != nil {
		return 0, err
	}
	return base | x<<8, nil
}

// countDataBytes sizes a DB statement without resolving values, so
// forward label references still lay out correctly in the first pass.
func countDataBytes(args []string, line int) (int, error) {
	total := 0
	for _, arg := range args {
		if text, ok := stringLiteral(arg); ok {
			total += utf8.RuneCountInString(text)
		} else {
			total++
		}
	}
	if total == 0 {
		return 0, errorf(line, "DB produced no bytes")
	}
	return total, nil
}

// stringLiteral recognizes quoted tokens of any length. Single-char
// quotes are treated as one-byte strings here, which encodes the same
// bytes as the character literal path.
func stringLiteral(token string) (string, bool) {
	t := strings.TrimSpace(token)
	if len(t) < 2 {
		return "", false
	}
	first := t[0]
	if (first != '\'' && first != '"') || t[len(t)-1] != first {
		return "", false
	}
	return t[1 : len(t)-1], true
}

// encodeData turns DB arguments into bytes. Characters outside the
// byte range are truncated to their low 8 bits.
func encodeData(args []string, labels map[string]int, line int) ([]byte, error) {
	var values []byte
	for _, arg := range args {
		if text, ok := stringLiteral(arg); ok {
			for _, ch := range text {
				values = append(values, byte(ch))
			}
			continue
		}

		v, err := parseValue(arg, labels, line)
		if err != nil {
			return nil, err
		}
		if err := ensureRange(v, 0, 0xFF, "byte", line); err != nil {
			return nil, err
		}
		values = append(values, byte(v))
	}
	return values, nil
}
