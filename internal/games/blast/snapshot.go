package blast

import "github.com/vovakirdan/tui-blast/internal/games/blast/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	HighScore int
	Combo     int
	Lines     int
	Board     []string // Board rows, '#' occupied and '.' free
	Tray      []string // Tray entries, "-" for an empty slot
	Fits      []int    // Legal origins per tray slot, 0 for an empty slot
	Selected  int
	Cursor    core.Coord
	Flash     []core.Coord // Cleared cells still flashing, row-major
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Mode: g.mode.ID, State: StatePlaying}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Phase() == core.PhaseOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	board := g.session.Board()
	entries := g.session.Tray()
	tray := make([]string, len(entries))
	fits := make([]int, len(entries))
	for i, e := range entries {
		tray[i] = e.String()
		fits[i] = core.CountPlacements(board, e.Shape, e.Rotation)
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode.ID,
		Score:     g.session.Score(),
		HighScore: max(g.highScore, g.session.Score()),
		Combo:     g.session.Combo(),
		Lines:     g.session.Lines(),
		Board:     board.Rows(),
		Tray:      tray,
		Fits:      fits,
		Selected:  g.selected,
		Cursor:    g.cursor,
		Flash:     sortedFlash(g.flash),
		State:     state,
	}
}
