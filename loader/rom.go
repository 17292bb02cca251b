// Package loader provides ROM image loading for CHIP-8 programs.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c8lab/c8sim/emu"
)

// ErrEmptyImage reports a ROM file with no content.
var ErrEmptyImage = errors.New("ROM image is empty")

// Program represents a loaded ROM image ready to run.
type Program struct {
	// Name identifies the ROM. Load derives it from the file name
	// without its extension; images built in memory are named "rom".
	Name string

	// Entry is the address execution starts from.
	Entry uint16

	// Data holds the raw program bytes placed at Entry.
	Data []byte
}

// Load reads a CHIP-8 ROM image from a file. Any content that fits in
// the program space is accepted; CHIP-8 images carry no header to
// validate.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file: %w", err)
	}

	prog, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	prog.Name = romName(path)

	return prog, nil
}

// LoadBytes wraps an in-memory ROM image. The image is copied, so the
// caller may reuse the slice.
func LoadBytes(data []byte) (*Program, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > emu.MaxProgramSize {
		return nil, &emu.ProgramTooLargeError{Size: len(data), Max: emu.MaxProgramSize}
	}

	img := make([]byte, len(data))
	copy(img, data)

	return &Program{
		Name:  "rom",
		Entry: emu.LoadAddress,
		Data:  img,
	}, nil
}

// romName derives a display name from the ROM file path.
func romName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
