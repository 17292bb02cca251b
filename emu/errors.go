// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"errors"
	"fmt"
)

// Stack misuse errors. Both are fatal to the current run.
var (
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
)

// ErrInstructionLimit reports that the configured instruction limit was
// reached. It marks a bounded run ending, not a machine fault.
var ErrInstructionLimit = errors.New("instruction limit reached")

// InvalidOpcodeError reports an unrecognized instruction word.
// Execution halts at the faulting address.
type InvalidOpcodeError struct {
	// Word is the offending 16-bit encoding.
	Word uint16
	// Addr is the address the word was fetched from.
	Addr uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %04X at address %03X", e.Word, e.Addr)
}

// ProgramTooLargeError reports a program image that does not fit in the
// memory above the load address. It is raised at load time, before
// execution starts.
type ProgramTooLargeError struct {
	// Size is the image size in bytes.
	Size int
	// Max is the available program space in bytes.
	Max int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program of %d bytes exceeds the %d available", e.Size, e.Max)
}

// UnknownProfileError reports an unrecognized quirks preset name.
type UnknownProfileError struct {
	// Name is the rejected preset name, normalized.
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown quirks profile %q, expected one of: modern, original", e.Name)
}
