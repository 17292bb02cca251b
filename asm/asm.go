// Package asm provides a two-pass assembler for CHIP-8 mnemonic source.
package asm

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

type stmtKind int

const (
	stmtInstruction stmtKind = iota
	stmtOrg
	stmtData
	stmtWords
)

type statement struct {
	line int
	kind stmtKind
	op   string
	args []string
}

// Assembler translates CHIP-8 mnemonic source into machine code. The
// first pass collects label addresses, the second encodes statements.
type Assembler struct {
	origin int
}

// New creates an assembler that places the first output byte at origin.
// Programs conventionally start at 0x200.
func New(origin uint16) *Assembler {
	return &Assembler{origin: int(origin)}
}

// AssembleFile assembles the source file at path.
func (a *Assembler) AssembleFile(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return a.Assemble(string(source))
}

// Assemble translates source into a binary image laid out from the
// assembler's origin. Errors carry the 1-based source line.
func (a *Assembler) Assemble(source string) ([]byte, error) {
	statements, labels, err := a.parse(source)
	if err != nil {
		return nil, err
	}
	return a.encode(statements, labels)
}

// parse is the first pass. It splits lines into statements and records
// the address of every label.
func (a *Assembler) parse(source string) ([]statement, map[string]int, error) {
	var statements []statement
	labels := make(map[string]int)
	pc := a.origin

	for i, raw := range strings.Split(source, "\n") {
		line := i + 1
		content := strings.TrimSpace(stripComment(raw))
		if content == "" {
			continue
		}

		names, rest, err := splitLabels(content, line)
		if err != nil {
			return nil, nil, err
		}
		for _, name := range names {
			if _, ok := labels[name]; ok {
				return nil, nil, errorf(line, "duplicate label %q", name)
			}
			labels[name] = pc
		}
		if rest == "" {
			continue
		}

		op, args := splitOperation(rest)
		st := statement{line: line, kind: classifyOp(op), op: op, args: args}
		statements = append(statements, st)

		switch st.kind {
		case stmtOrg:
			if len(args) != 1 {
				return nil, nil, errorf(line, "ORG expects exactly one argument")
			}
			target, err := parseNumeric(args[0], line)
			if err != nil {
				return nil, nil, err
			}
			if target < a.origin {
				return nil, nil, errorf(line, "ORG target 0x%03X cannot be below origin 0x%03X", target, a.origin)
			}
			if target < pc {
				return nil, nil, errorf(line, "ORG target 0x%03X cannot move backwards from 0x%03X", target, pc)
			}
			pc = target
		case stmtData:
			if len(args) == 0 {
				return nil, nil, errorf(line, "DB expects at least one argument")
			}
			n, err := countDataBytes(args, line)
			if err != nil {
				return nil, nil, err
			}
			pc += n
		case stmtWords:
			if len(args) == 0 {
				return nil, nil, errorf(line, "DW expects at least one argument")
			}
			pc += 2 * len(args)
		case stmtInstruction:
			pc += 2
		}
	}

	return statements, labels, nil
}

// encode is the second pass. Label addresses are known, so every
// statement can be turned into bytes.
func (a *Assembler) encode(statements []statement, labels map[string]int) ([]byte, error) {
	var out []byte
	addr := a.origin

	for _, st := range statements {
		switch st.kind {
		case stmtOrg:
			target, err := parseNumeric(st.args[0], st.line)
			if err != nil {
				return nil, err
			}
			if target < addr {
				return nil, errorf(st.line, "ORG target 0x%03X cannot move backwards from 0x%03X", target, addr)
			}
			out = append(out, make([]byte, target-addr)...)
			addr = target
		case stmtData:
			values, err := encodeData(st.args, labels, st.line)
			if err != nil {
				return nil, err
			}
			out = append(out, values...)
			addr += len(values)
		case stmtWords:
			for _, arg := range st.args {
				word, err := parseValue(arg, labels, st.line)
				if err != nil {
					return nil, err
				}
				if err := ensureRange(word, 0, 0xFFFF, "word", st.line); err != nil {
					return nil, err
				}
				out = append(out, byte(word>>8), byte(word))
				addr += 2
			}
		case stmtInstruction:
			word, err := encodeInstruction(st.op, st.args, labels, st.line)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(word>>8), byte(word))
			addr += 2
		}
	}

	return out, nil
}

// stripComment cuts the line at the first ; or # that is not inside a
// quoted literal.
func stripComment(line string) string {
	var quote rune
	for i, ch := range line {
		switch {
		case ch == '\'' || ch == '"':
			if quote == 0 {
				quote = ch
			} else if quote == ch {
				quote = 0
			}
		case (ch == ';' || ch == '#') && quote == 0:
			return line[:i]
		}
	}
	return line
}

// splitLabels peels "name:" prefixes off a line. Anything before a
// colon that is empty or contains whitespace is not a label, so code
// like "LD V0, 1" passes through untouched.
func splitLabels(content string, line int) ([]string, string, error) {
	var names []string
	rest := strings.TrimSpace(content)

	for {
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return names, rest, nil
		}

		name := strings.TrimSpace(rest[:colon])
		if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
			return names, rest, nil
		}
		if !validLabel(name) {
			return nil, "", errorf(line, "invalid label %q", name)
		}

		names = append(names, name)
		rest = strings.TrimSpace(rest[colon+1:])
		if rest == "" {
			return names, "", nil
		}
	}
}

// validLabel accepts identifiers: a letter or underscore followed by
// letters, digits, or underscores.
func validLabel(name string) bool {
	for i, ch := range name {
		switch {
		case ch == '_':
		case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}

// splitOperation separates the mnemonic from its comma-separated
// arguments.
func splitOperation(text string) (string, []string) {
	op := text
	rest := ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		op = text[:i]
		rest = strings.TrimSpace(text[i:])
	}
	return normalizeOp(op), splitArguments(rest)
}

// normalizeOp uppercases the mnemonic and drops a leading dot, so .org
// and ORG are the same directive.
func normalizeOp(op string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(op), "."))
}

// splitArguments splits on commas that are not inside quoted literals.
func splitArguments(text string) []string {
	if text == "" {
		return nil
	}

	var args []string
	var token strings.Builder
	var quote rune

	flush := func() {
		if v := strings.TrimSpace(token.String()); v != "" {
			args = append(args, v)
		}
		token.Reset()
	}

	for _, ch := range text {
		switch {
		case ch == '\'' || ch == '"':
			if quote == 0 {
				quote = ch
			} else if quote == ch {
				quote = 0
			}
			token.WriteRune(ch)
		case ch == ',' && quote == 0:
			flush()
		default:
			token.WriteRune(ch)
		}
	}
	flush()

	return args
}

func classifyOp(op string) stmtKind {
	switch op {
	case "ORG":
		return stmtOrg
	case "DB":
		return stmtData
	case "DW":
		return stmtWords
	}
	return stmtInstruction
}
