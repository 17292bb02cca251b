package clock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/c8lab/c8sim/emu"
)

// RunConfig holds the pacing parameters for a timed run.
type RunConfig struct {
	// CyclesPerSecond is the instruction rate. Most games play well
	// around 700. Default: 700.
	CyclesPerSecond uint64 `json:"cycles_per_second"`

	// FramesPerSecond is the host frame rate the driver assumes for
	// synthetic frames in headless runs. Default: 60.
	FramesPerSecond uint64 `json:"frames_per_second"`

	// TimerHz is the delay and sound timer rate. The machine defines
	// it as 60; it is configurable for experiments only. Default: 60.
	TimerHz uint64 `json:"timer_hz"`

	// MaxFrameDelta is the largest slice of elapsed time, in seconds,
	// a single frame may account for. It bounds the catch-up burst
	// after the host stalls. Default: 0.1.
	MaxFrameDelta float64 `json:"max_frame_delta"`

	// Quirks names the quirks profile to run with. Default: "modern".
	Quirks string `json:"quirks"`

	// MaxCycles stops a headless run after this many instruction
	// cycles. Zero means no limit. Default: 0.
	MaxCycles uint64 `json:"max_cycles"`
}

// DefaultRunConfig returns a RunConfig with playable defaults.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		CyclesPerSecond: 700,
		FramesPerSecond: 60,
		TimerHz:         60,
		MaxFrameDelta:   0.1,
		Quirks:          "modern",
		MaxCycles:       0,
	}
}

// LoadConfig loads a RunConfig from a JSON file. Missing fields keep
// their defaults.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	config := DefaultRunConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a RunConfig to a JSON file.
func (c *RunConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that the pacing values can drive a run.
func (c *RunConfig) Validate() error {
	if c.CyclesPerSecond == 0 {
		return fmt.Errorf("cycles_per_second must be > 0")
	}
	if c.FramesPerSecond == 0 {
		return fmt.Errorf("frames_per_second must be > 0")
	}
	if c.TimerHz == 0 {
		return fmt.Errorf("timer_hz must be > 0")
	}
	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("max_frame_delta must be > 0")
	}
	if _, err := emu.QuirksByName(c.Quirks); err != nil {
		return err
	}
	return nil
}

// ResolveQuirks returns the quirks profile the config names.
func (c *RunConfig) ResolveQuirks() (emu.Quirks, error) {
	return emu.QuirksByName(c.Quirks)
}

// Clone returns a copy of the RunConfig.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	return &clone
}
