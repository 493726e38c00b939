package core

import "time"

// RuntimeConfig is what the platform hands a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Steps per second
	Seed     int64 // Same seed, same deal sequence
}

// WithDefaults fills unset fields: an 80x24 screen, 30 ticks per second and
// a time-based seed.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		c.ScreenW, c.ScreenH = 80, 24
	}
	if c.TickRate <= 0 {
		c.TickRate = 30
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// GameState is the part of a game the platform persists and reacts to.
type GameState struct {
	Score     int
	Lines     int // Lines cleared this run
	BestCombo int // Highest combo reached this run
	GameOver  bool
	Paused    bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Placed bool // A piece was committed this tick
}
