package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// recorder collects published events in order.
type recorder struct {
	events []core.Event
}

func (r *recorder) listen(ev core.Event) {
	r.events = append(r.events, ev)
}

func newSession(t *testing.T, slots int, initial *core.Board, entries ...core.TrayEntry) *core.Session {
	t.Helper()
	cfg := core.SessionConfig{
		Width:         initial.Width(),
		Height:        initial.Height(),
		Slots:         slots,
		PointsPerLine: 100,
		Initial:       initial,
	}
	return core.NewSession(cfg, core.NewSequencePicker(entries...))
}

func TestSessionPlacementClearsAndPublishesInOrder(t *testing.T) {
	b := mustBoard(t,
		"###.",
		"....",
		"....",
		"....",
	)
	s := newSession(t, 1, b, entry(mono, core.Rot0))
	rec := &recorder{}
	s.Subscribe(rec.listen)

	turn, err := s.RequestPlacement(0, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, turn.Cleared.Count())
	assert.Equal(t, 100, turn.Gained)
	assert.Equal(t, 100, turn.Score)
	assert.Equal(t, 1, turn.Combo)
	assert.Equal(t, []core.Coord{core.C(3, 0)}, turn.Cells)
	assert.False(t, turn.GameOver)

	require.Len(t, rec.events, 3)
	assert.Equal(t, core.LinesCleared{Count: 1, Combo: 1, Rows: []int{0}}, rec.events[0])
	assert.Equal(t, core.ScoreChanged{Score: 100}, rec.events[1])
	assert.Equal(t, core.TrayRefilled{Slots: []int{0}}, rec.events[2])

	assert.True(t, s.Board().IsEmpty())
	assert.Equal(t, core.PhaseActive, s.Phase())
}

func TestSessionIllegalPlacementLeavesStateUntouched(t *testing.T) {
	b := mustBoard(t,
		"#...",
		"....",
	)
	s := newSession(t, 2, b, entry(domino, core.Rot0))
	rec := &recorder{}
	s.Subscribe(rec.listen)

	before := s.Board()
	_, err := s.RequestPlacement(0, 3, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrIllegalPlacement))

	var perr *core.PlacementError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, core.C(4, 0), perr.Cell)

	_, err = s.RequestPlacement(1, -1, 0)
	assert.True(t, errors.Is(err, core.ErrIllegalPlacement))

	assert.True(t, before.Equal(s.Board()))
	assert.Equal(t, 2, len(s.Tray()))
	assert.False(t, s.Entry(0).Empty())
	assert.Empty(t, rec.events)
}

func TestSessionSlotErrors(t *testing.T) {
	s := core.NewSession(core.SessionConfig{Width: 4, Height: 4, Slots: 2, Refill: core.RefillBatch},
		core.NewSequencePicker(entry(mono, core.Rot0)))

	_, err := s.RequestPlacement(5, 0, 0)
	assert.True(t, errors.Is(err, core.ErrSlotOutOfRange))

	_, err = s.RequestPlacement(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, s.Entry(0).Empty(), "batch refill waits for the last slot")

	_, err = s.RequestPlacement(0, 1, 0)
	assert.True(t, errors.Is(err, core.ErrEmptySlot))
}

func TestSessionGameOver(t *testing.T) {
	// Checkerboard: no two free cells are adjacent.
	b := mustBoard(t,
		"#.#.",
		".#.#",
		"#.#.",
		".#.#",
	)
	s := newSession(t, 1, b, entry(mono, core.Rot0), entry(domino, core.Rot0))
	rec := &recorder{}
	s.Subscribe(rec.listen)

	turn, err := s.RequestPlacement(0, 1, 0)
	require.NoError(t, err)
	assert.True(t, turn.GameOver)
	assert.Equal(t, core.PhaseOver, s.Phase())

	require.Len(t, rec.events, 2)
	assert.Equal(t, core.TrayRefilled{Slots: []int{0}}, rec.events[0])
	assert.Equal(t, core.GameOver{}, rec.events[1])

	_, err = s.RequestPlacement(0, 3, 0)
	assert.True(t, errors.Is(err, core.ErrGameOver))
	assert.True(t, s.CheckGameOver())
	assert.Len(t, rec.events, 2, "game over is published once")
}

func TestSessionComboAcrossTurns(t *testing.T) {
	b := mustBoard(t,
		"###.",
		"###.",
		"###.",
		"....",
	)
	s := newSession(t, 1, b, entry(mono, core.Rot0))

	// Fill (3,0): row 0 clears, combo 1.
	turn, err := s.RequestPlacement(0, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, turn.Gained)

	// Fill (3,1): row 1 clears, combo 2.
	turn, err = s.RequestPlacement(0, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 200, turn.Gained)

	// Dry turn resets the combo.
	turn, err = s.RequestPlacement(0, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, turn.Gained)
	assert.Zero(t, s.Combo())

	assert.Equal(t, 300, s.Score())
	assert.Equal(t, 2, s.BestCombo())
	assert.Equal(t, 2, s.Lines())
}

func TestSessionApplyScore(t *testing.T) {
	s := core.NewSession(core.DefaultSessionConfig(), core.NewSequencePicker(entry(mono, core.Rot0)))
	rec := &recorder{}
	s.Subscribe(rec.listen)

	assert.Equal(t, 100, s.ApplyScore(1))
	assert.Equal(t, 400, s.ApplyScore(2))
	assert.Zero(t, s.ApplyScore(0))
	assert.Zero(t, s.Combo())

	assert.Equal(t, []core.Event{
		core.ScoreChanged{Score: 100},
		core.ScoreChanged{Score: 500},
	}, rec.events)
}

func TestSessionReset(t *testing.T) {
	b := mustBoard(t,
		"#.#.",
		".#.#",
		"#.#.",
		".#.#",
	)
	s := newSession(t, 1, b, entry(mono, core.Rot0), entry(domino, core.Rot0))
	_, err := s.RequestPlacement(0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, core.PhaseOver, s.Phase())

	rec := &recorder{}
	s.Subscribe(rec.listen)
	s.Reset()

	assert.Equal(t, core.PhaseActive, s.Phase())
	assert.True(t, s.Board().IsEmpty())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Combo())
	assert.Equal(t, 1, len(s.Tray()))
	require.NotEmpty(t, rec.events)
	assert.Equal(t, core.ScoreChanged{Score: 0}, rec.events[0])
}

func TestSessionUnsubscribe(t *testing.T) {
	s := core.NewSession(core.DefaultSessionConfig(), core.NewSequencePicker(entry(mono, core.Rot0)))
	a, b := &recorder{}, &recorder{}
	unsubA := s.Subscribe(a.listen)
	s.Subscribe(b.listen)

	s.ApplyScore(1)
	unsubA()
	unsubA()
	s.ApplyScore(1)

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
}

func TestSessionBoardIsCopy(t *testing.T) {
	s := core.NewSession(core.DefaultSessionConfig(), core.NewSequencePicker(entry(mono, core.Rot0)))
	b := s.Board()
	b.Place(mono, core.Rot0, 0, 0)
	assert.True(t, s.Board().IsEmpty())
}

func TestSessionHint(t *testing.T) {
	b := mustBoard(t, "#..", "...")
	s := newSession(t, 1, b, entry(domino, core.Rot0))

	at, ok := s.Hint(0)
	require.True(t, ok)
	assert.Equal(t, core.C(1, 0), at)
	assert.True(t, s.CanPlace(0, at.X, at.Y))
	assert.False(t, s.CanPlace(0, 0, 0))

	_, ok = s.Hint(3)
	assert.False(t, ok)
}
