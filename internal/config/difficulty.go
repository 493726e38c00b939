package config

import "math"

// Progression types.
const (
	ProgressScore = "score" // Level follows the score
	ProgressLines = "lines" // Level follows cleared lines
	ProgressNone  = "none"  // Level stays at initial_level
)

// Progress is how far a run has come.
type Progress struct {
	Score int
	Lines int
}

// DifficultyManager maps a run's progress onto a level in [0, 1] that
// scales how often large shapes are dealt.
type DifficultyManager struct {
	kind    string
	maxAt   float64
	initial float64
	boost   float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	kind := cfg.Progression.Type
	if !cfg.Enabled || kind == "" {
		kind = ProgressNone
	}
	return &DifficultyManager{
		kind:    kind,
		maxAt:   math.Max(1, float64(cfg.Progression.MaxAt)),
		initial: clampUnit(cfg.InitialLevel),
		boost:   math.Max(0, cfg.Scaling.LargeShapeBoost),
	}
}

// Progressive reports whether the level changes during a run.
func (d *DifficultyManager) Progressive() bool {
	return d.kind == ProgressScore || d.kind == ProgressLines
}

// Level interpolates from the initial level to 1 as progress nears max_at.
func (d *DifficultyManager) Level(p Progress) float64 {
	var v float64
	switch d.kind {
	case ProgressScore:
		v = float64(p.Score)
	case ProgressLines:
		v = float64(p.Lines)
	default:
		return d.initial
	}
	return d.initial + clampUnit(v/d.maxAt)*(1-d.initial)
}

// LargeShapeBoost returns the boost factor handed to the shape picker.
// The picker multiplies large-shape weights by 1 + level*boost.
func (d *DifficultyManager) LargeShapeBoost() float64 {
	return d.boost
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
