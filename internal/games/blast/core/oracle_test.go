package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

var (
	domino = core.MustShape("I2", core.ColorGreen, core.C(0, 0), core.C(1, 0))
	bar5   = core.MustShape("I5", core.ColorRed,
		core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0), core.C(4, 0))
)

func entry(s core.Shape, r core.Rotation) core.TrayEntry {
	return core.TrayEntry{Shape: s, Rotation: r}
}

func TestGameOverOnFullBoard(t *testing.T) {
	full := mustBoard(t, "####", "####", "####", "####")
	assert.True(t, core.IsGameOver(full, []core.TrayEntry{entry(mono, core.Rot0)}))

	lastCell := mustBoard(t, "####", "####", "###.", "####")
	assert.False(t, core.IsGameOver(lastCell, []core.TrayEntry{entry(mono, core.Rot0)}))
	assert.True(t, core.IsGameOver(lastCell, []core.TrayEntry{entry(domino, core.Rot0)}))
	assert.False(t, core.IsGameOver(lastCell, []core.TrayEntry{
		entry(domino, core.Rot0),
		entry(mono, core.Rot0),
	}))
}

func TestGameOverIgnoresEmptyEntries(t *testing.T) {
	b := core.NewBoard(4, 4)
	assert.True(t, core.IsGameOver(b, []core.TrayEntry{{}, {}}))
	assert.True(t, core.IsGameOver(b, nil))
	assert.False(t, core.IsGameOver(b, []core.TrayEntry{{}, entry(mono, core.Rot0)}))
}

func TestGameOverRespectsRotation(t *testing.T) {
	// Only a vertical pair of free cells remains.
	b := mustBoard(t,
		"##.#",
		"##.#",
		"####",
	)
	assert.True(t, core.IsGameOver(b, []core.TrayEntry{entry(domino, core.Rot0)}))
	assert.False(t, core.IsGameOver(b, []core.TrayEntry{entry(domino, core.Rot90)}))
}

func TestCanPlaceAnywhereShapeLargerThanBoard(t *testing.T) {
	b := core.NewBoard(4, 4)
	assert.False(t, core.CanPlaceAnywhere(b, bar5, core.Rot0))
	assert.False(t, core.CanPlaceAnywhere(b, bar5, core.Rot90))
	assert.False(t, core.CanPlaceAnywhere(b, core.Shape{}, core.Rot0))
}

func TestFindPlacementRowMajor(t *testing.T) {
	b := mustBoard(t,
		"#.#.",
		"....",
	)
	at, ok := core.FindPlacement(b, mono, core.Rot0)
	assert.True(t, ok)
	assert.Equal(t, core.C(1, 0), at)

	at, ok = core.FindPlacement(b, domino, core.Rot0)
	assert.True(t, ok)
	assert.Equal(t, core.C(0, 1), at)
}

func TestCountPlacements(t *testing.T) {
	b := core.NewBoard(4, 4)
	tests := []struct {
		name  string
		shape core.Shape
		rot   core.Rotation
		want  int
	}{
		{"mono", mono, core.Rot0, 16},
		{"domino flat", domino, core.Rot0, 12},
		{"domino upright", domino, core.Rot270, 12},
		{"too long", bar5, core.Rot0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.CountPlacements(b, tt.shape, tt.rot); got != tt.want {
				t.Errorf("CountPlacements() = %d, want %d", got, tt.want)
			}
		})
	}
}
