package core

import (
	"fmt"
)

// Phase is the session state.
type Phase uint8

const (
	PhaseActive Phase = iota
	PhaseOver
)

func (p Phase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "active"
}

// SessionConfig holds the parameters for a new Session.
type SessionConfig struct {
	Width         int
	Height        int
	Slots         int
	PointsPerLine int
	Refill        RefillMode

	// Initial, when set, is copied as the starting board. Reset still
	// clears the board completely.
	Initial *Board
}

// DefaultSessionConfig returns the classic 8x8 board with three slots.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Width:         8,
		Height:        8,
		Slots:         3,
		PointsPerLine: DefaultPointsPerLine,
		Refill:        RefillSlot,
	}
}

// Turn describes one committed placement.
type Turn struct {
	Slot     int
	Entry    TrayEntry
	Origin   Coord
	Cells    []Coord // Board cells filled by the placement
	Cleared  LineClear
	Gained   int
	Score    int
	Combo    int
	Refilled []int
	GameOver bool
}

// Session owns one game: board, scorer, tray and subscribers.
// It is not safe for concurrent use; callers serialize placements.
type Session struct {
	board  *Board
	scorer *Scorer
	tray   *Tray
	phase  Phase

	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewSession creates a session and fills the tray.
func NewSession(cfg SessionConfig, picker Picker) *Session {
	def := DefaultSessionConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Slots <= 0 {
		cfg.Slots = def.Slots
	}

	board := NewBoard(cfg.Width, cfg.Height)
	if cfg.Initial != nil {
		board = cfg.Initial.Clone()
	}

	s := &Session{
		board:     board,
		scorer:    NewScorer(cfg.PointsPerLine),
		tray:      NewTray(cfg.Slots, picker, cfg.Refill),
		listeners: make(map[int]Listener),
	}
	s.tray.Fill()
	return s
}

// Board returns a copy of the current board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Tray returns a copy of the current tray entries.
func (s *Session) Tray() []TrayEntry { return s.tray.Entries() }

// Entry returns the tray entry in slot i.
func (s *Session) Entry(i int) TrayEntry { return s.tray.Entry(i) }

// Slots returns the tray size.
func (s *Session) Slots() int { return s.tray.Len() }

// Score returns the current score.
func (s *Session) Score() int { return s.scorer.Points() }

// Combo returns the current combo level.
func (s *Session) Combo() int { return s.scorer.Combo() }

// BestCombo returns the highest combo reached this game.
func (s *Session) BestCombo() int { return s.scorer.BestCombo() }

// Lines returns the total lines cleared this game.
func (s *Session) Lines() int { return s.scorer.Lines() }

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// CanPlace reports whether tray slot i fits at (x, y) without mutating anything.
func (s *Session) CanPlace(slot, x, y int) bool {
	e := s.tray.Entry(slot)
	if e.Empty() {
		return false
	}
	return s.board.CanPlace(e.Shape, e.Rotation, x, y)
}

// Hint returns the first origin where tray slot i fits.
func (s *Session) Hint(slot int) (Coord, bool) {
	e := s.tray.Entry(slot)
	if e.Empty() {
		return Coord{}, false
	}
	return FindPlacement(s.board, e.Shape, e.Rotation)
}

// Subscribe registers l and returns a function that removes it.
// Listeners run in subscription order.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Session) publish(events ...Event) {
	// Copy so listeners may unsubscribe while being notified.
	ids := append([]int(nil), s.order...)
	for _, ev := range events {
		for _, id := range ids {
			if l, ok := s.listeners[id]; ok {
				l(ev)
			}
		}
	}
}

// RequestPlacement places the entry in tray slot at origin (x, y).
// An illegal origin leaves the session untouched and returns an error
// wrapping ErrIllegalPlacement.
func (s *Session) RequestPlacement(slot, x, y int) (Turn, error) {
	if s.phase == PhaseOver {
		return Turn{}, ErrGameOver
	}

	entry, err := s.tray.Peek(slot)
	if err != nil {
		return Turn{}, err
	}
	if blocked, ok := s.board.firstBlocked(entry.Shape, entry.Rotation, x, y); ok {
		return Turn{}, fmt.Errorf("slot %d at %s: %w", slot, C(x, y), &PlacementError{
			ShapeID:  entry.Shape.ID(),
			Rotation: entry.Rotation,
			Origin:   C(x, y),
			Cell:     blocked,
		})
	}

	// Commit: nothing below can fail.
	if _, err := s.tray.Take(slot); err != nil {
		return Turn{}, err
	}
	s.board.Place(entry.Shape, entry.Rotation, x, y)

	origin := C(x, y)
	norm := entry.Shape.NormalizedCells(int(entry.Rotation))
	cells := make([]Coord, len(norm))
	for i, c := range norm {
		cells[i] = c.Add(x, y)
	}

	cleared := s.board.ClearLines()
	gained := s.scorer.Apply(cleared.Count())
	refilled := s.tray.Refill()

	over := IsGameOver(s.board, s.tray.Entries())
	if over {
		s.phase = PhaseOver
	}

	turn := Turn{
		Slot:     slot,
		Entry:    entry,
		Origin:   origin,
		Cells:    cells,
		Cleared:  cleared,
		Gained:   gained,
		Score:    s.scorer.Points(),
		Combo:    s.scorer.Combo(),
		Refilled: refilled,
		GameOver: over,
	}

	var events []Event
	if cleared.Count() > 0 {
		events = append(events, LinesCleared{
			Count: cleared.Count(),
			Combo: turn.Combo,
			Rows:  cleared.Rows,
			Cols:  cleared.Cols,
		})
	}
	if gained > 0 {
		events = append(events, ScoreChanged{Score: turn.Score})
	}
	if len(refilled) > 0 {
		events = append(events, TrayRefilled{Slots: refilled})
	}
	if over {
		events = append(events, s.gameOverEvent())
	}
	s.publish(events...)

	return turn, nil
}

// ApplyScore feeds a cleared-line count to the scorer directly and returns
// the points gained. ScoreChanged is published when the score moves.
func (s *Session) ApplyScore(lines int) int {
	gained := s.scorer.Apply(lines)
	if gained > 0 {
		s.publish(ScoreChanged{Score: s.scorer.Points()})
	}
	return gained
}

// CheckGameOver runs the oracle against the current tray and moves the
// session to PhaseOver if nothing fits.
func (s *Session) CheckGameOver() bool {
	if s.phase == PhaseOver {
		return true
	}
	if !IsGameOver(s.board, s.tray.Entries()) {
		return false
	}
	s.phase = PhaseOver
	s.publish(s.gameOverEvent())
	return true
}

// Reset clears the board, score and combo, refills the tray and
// re-enters PhaseActive.
func (s *Session) Reset() {
	s.board.Reset()
	s.scorer.Reset()
	s.tray.Clear()
	s.tray.Fill()
	s.phase = PhaseActive

	slots := make([]int, s.tray.Len())
	for i := range slots {
		slots[i] = i
	}
	s.publish(ScoreChanged{Score: 0}, TrayRefilled{Slots: slots})
}

func (s *Session) gameOverEvent() GameOver {
	return GameOver{
		Score:     s.scorer.Points(),
		Lines:     s.scorer.Lines(),
		BestCombo: s.scorer.BestCombo(),
	}
}
