// Package asm provides a two-pass assembler for CHIP-8 mnemonic source.
package asm

import "fmt"

// SourceError reports a problem in assembly source. Line is 1-based;
// zero means the error is not tied to a single line.
type SourceError struct {
	Line int
	Msg  string
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func errorf(line int, format string, args ...any) error {
	return &SourceError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
