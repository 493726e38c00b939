// Package config provides YAML-based game configuration loading and
// difficulty management for Blast.
package config

import (
	"fmt"
	"strings"
)

// Board size limits accepted by Validate.
const (
	MinBoardSize = 4
	MaxBoardSize = 16
	MaxTraySlots = 5
)

// BlastConfig contains all configuration for a Blast game.
type BlastConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Tray       TrayConfig       `yaml:"tray"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Shapes     ShapesConfig     `yaml:"shapes"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TrayConfig defines how blocks are offered.
type TrayConfig struct {
	Slots          int    `yaml:"slots"`
	Refill         string `yaml:"refill"`          // "slot" or "batch"
	RandomRotation bool   `yaml:"random_rotation"` // Assign a rotation when a block spawns
}

// ScoringConfig defines the score award.
type ScoringConfig struct {
	PointsPerLine int `yaml:"points_per_line"`
}

// ShapesConfig selects the shape set.
type ShapesConfig struct {
	Set  string `yaml:"set"`  // Set ID, built-in or under Path
	Path string `yaml:"path"` // Optional file or directory of shape sets
}

// DisplayConfig defines presentation timings in ticks.
type DisplayConfig struct {
	ComboTicks int `yaml:"combo_ticks"` // How long the combo banner stays up
	FlashTicks int `yaml:"flash_ticks"` // How long cleared cells flash
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "lines" or "none"
	MaxAt int    `yaml:"max_at"` // Score or line count at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	LargeShapeBoost float64 `yaml:"large_shape_boost"` // Extra weight for large shapes at max difficulty
}

// Validate checks that the configuration describes a playable game.
func (c BlastConfig) Validate() error {
	if c.Board.Width < MinBoardSize || c.Board.Width > MaxBoardSize ||
		c.Board.Height < MinBoardSize || c.Board.Height > MaxBoardSize {
		return fmt.Errorf("config: board %dx%d out of range %d..%d",
			c.Board.Width, c.Board.Height, MinBoardSize, MaxBoardSize)
	}
	if c.Tray.Slots < 1 || c.Tray.Slots > MaxTraySlots {
		return fmt.Errorf("config: tray slots %d out of range 1..%d", c.Tray.Slots, MaxTraySlots)
	}
	switch strings.ToLower(c.Tray.Refill) {
	case "", "slot", "batch":
	default:
		return fmt.Errorf("config: unknown refill mode %q", c.Tray.Refill)
	}
	if c.Scoring.PointsPerLine <= 0 {
		return fmt.Errorf("config: points_per_line must be positive, got %d", c.Scoring.PointsPerLine)
	}
	if c.Display.ComboTicks < 0 || c.Display.FlashTicks < 0 {
		return fmt.Errorf("config: display ticks must not be negative")
	}
	if l := c.Difficulty.InitialLevel; l < 0 || l > 1 {
		return fmt.Errorf("config: initial_level %g out of range 0..1", l)
	}
	if c.Difficulty.Scaling.LargeShapeBoost < 0 {
		return fmt.Errorf("config: large_shape_boost must not be negative, got %g", c.Difficulty.Scaling.LargeShapeBoost)
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressScore, ProgressLines, ProgressNone:
	default:
		return fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
