package blast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/shapes"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

var (
	mono = core.MustShape("mono", core.ColorRed, core.C(0, 0))
	bar3 = core.MustShape("bar3", core.ColorCyan, core.C(0, 0), core.C(1, 0), core.C(2, 0))
	bar5 = core.MustShape("bar5", core.ColorBlue, core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0), core.C(4, 0))
)

var testMode = Mode{ID: "blast_test", Title: "Blast Test"}

func testConfig(w, h, slots int) *config.BlastConfig {
	cfg := config.DefaultBlastConfig()
	cfg.Board.Width, cfg.Board.Height = w, h
	cfg.Tray.Slots = slots
	return &cfg
}

// newTestGame builds a game whose tray is dealt from a fixed sequence.
func newTestGame(t *testing.T, cfg *config.BlastConfig, opts Options, entries ...core.TrayEntry) *Game {
	t.Helper()
	set := shapes.Set{ID: "test", Shapes: []core.Shape{mono, bar3, bar5}}
	opts.Config = cfg
	opts.Shapes = &set
	opts.Picker = core.NewSequencePicker(entries...)
	g := NewWithOptions(testMode, opts)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// placeAt walks the cursor to (x, y) from the top-left and places.
func placeAt(g *Game, x, y int) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for iter := 0; iter < 16; iter++ {
		in.Set(platformcore.ActionLeft)
		in.Set(platformcore.ActionUp)
	}
	for iter := 0; iter < x; iter++ {
		in.Set(platformcore.ActionRight)
	}
	for iter := 0; iter < y; iter++ {
		in.Set(platformcore.ActionDown)
	}
	in.Set(platformcore.ActionPlace)
	return g.Step(in)
}

func TestPlaceCompletesRow(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})

	res := g.Step(frame(
		platformcore.ActionPlace, platformcore.ActionRight,
		platformcore.ActionPlace, platformcore.ActionRight,
		platformcore.ActionPlace, platformcore.ActionRight,
		platformcore.ActionPlace,
	))

	if !res.Placed {
		t.Error("Step() Placed = false, want true")
	}
	if res.State.Score != 100 {
		t.Errorf("Score = %d, want 100", res.State.Score)
	}
	if res.State.Lines != 1 {
		t.Errorf("Lines = %d, want 1", res.State.Lines)
	}

	snap := g.Snapshot()
	if strings.Join(snap.Board, "") != strings.Repeat(".", 16) {
		t.Errorf("board after clear = %v, want empty", snap.Board)
	}
	if len(snap.Flash) != 4 {
		t.Fatalf("flash cells = %d, want 4", len(snap.Flash))
	}
	for i, c := range snap.Flash {
		if c != core.C(i, 0) {
			t.Errorf("Flash[%d] = %v, want %v", i, c, core.C(i, 0))
		}
	}
}

func TestFlashExpires(t *testing.T) {
	cfg := testConfig(4, 4, 1)
	cfg.Display.FlashTicks = 2
	g := newTestGame(t, cfg, Options{}, core.TrayEntry{Shape: mono})

	for x := 0; x < 4; x++ {
		placeAt(g, x, 0)
	}
	if len(g.Snapshot().Flash) == 0 {
		t.Fatal("expected flashing cells right after the clear")
	}

	g.Step(frame())
	if len(g.Snapshot().Flash) == 0 {
		t.Error("flash ended one tick early")
	}
	g.Step(frame())
	if len(g.Snapshot().Flash) != 0 {
		t.Error("flash still active after FlashTicks")
	}
}

func TestIllegalPlacementKeepsState(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})

	if res := placeAt(g, 1, 1); !res.Placed {
		t.Fatal("first placement failed")
	}
	before := g.Snapshot()

	res := placeAt(g, 1, 1)
	if res.Placed {
		t.Error("placement over an occupied cell succeeded")
	}
	after := g.Snapshot()
	if strings.Join(after.Board, "\n") != strings.Join(before.Board, "\n") {
		t.Errorf("board changed:\n%v\nwant\n%v", after.Board, before.Board)
	}
	if after.Score != before.Score {
		t.Errorf("Score = %d, want %d", after.Score, before.Score)
	}
	if g.message == "" {
		t.Error("expected a status message after a rejected placement")
	}
}

func TestCursorClampedToShapeBounds(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: bar3})

	in := platformcore.NewInputFrame()
	for iter := 0; iter < 10; iter++ {
		in.Set(platformcore.ActionRight)
		in.Set(platformcore.ActionDown)
	}
	g.Step(in)

	if got, want := g.Cursor(), core.C(1, 3); got != want {
		t.Errorf("Cursor() = %v, want %v", got, want)
	}

	// The vertical bar is three tall.
	g2 := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: bar3, Rotation: core.Rot90})
	g2.Step(in)
	if got, want := g2.Cursor(), core.C(3, 1); got != want {
		t.Errorf("rotated Cursor() = %v, want %v", got, want)
	}
}

func TestSlotSelection(t *testing.T) {
	g := newTestGame(t, testConfig(6, 6, 2), Options{},
		core.TrayEntry{Shape: mono}, core.TrayEntry{Shape: bar3})

	tests := []struct {
		name   string
		action platformcore.Action
		want   int
	}{
		{"direct slot 2", platformcore.SlotAction(1), 1},
		{"next wraps", platformcore.ActionNextSlot, 0},
		{"prev wraps", platformcore.ActionPrevSlot, 1},
		{"out of range ignored", platformcore.SlotAction(4), 1},
		{"direct slot 1", platformcore.SlotAction(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Step(frame(tt.action))
			if g.Selected() != tt.want {
				t.Errorf("Selected() = %d, want %d", g.Selected(), tt.want)
			}
		})
	}
}

func TestBatchRefillSkipsEmptySlots(t *testing.T) {
	cfg := testConfig(6, 6, 2)
	cfg.Tray.Refill = "batch"
	g := newTestGame(t, cfg, Options{}, core.TrayEntry{Shape: mono}, core.TrayEntry{Shape: bar3})

	placeAt(g, 0, 0)
	if g.Selected() != 1 {
		t.Fatalf("Selected() after emptying slot 0 = %d, want 1", g.Selected())
	}
	g.Step(frame(platformcore.SlotAction(0)))
	if g.Selected() != 1 {
		t.Errorf("selecting an empty slot moved selection to %d", g.Selected())
	}

	placeAt(g, 0, 2)
	snap := g.Snapshot()
	if snap.Tray[0] == "-" || snap.Tray[1] == "-" {
		t.Errorf("tray after batch refill = %v, want both slots dealt", snap.Tray)
	}
	if g.Selected() != 1 {
		t.Errorf("Selected() after refill = %d, want 1", g.Selected())
	}
}

func TestHintMovesCursor(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})

	placeAt(g, 0, 0)
	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionDown, platformcore.ActionHint))

	if got, want := g.Cursor(), core.C(1, 0); got != want {
		t.Errorf("Cursor() after hint = %v, want %v", got, want)
	}
}

func TestComboBanner(t *testing.T) {
	cfg := testConfig(4, 4, 1)
	cfg.Display.ComboTicks = 3
	g := newTestGame(t, cfg, Options{}, core.TrayEntry{Shape: mono})

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			placeAt(g, x, y)
		}
	}
	placeAt(g, 3, 0)
	if g.comboText != "" {
		t.Errorf("banner after first clear = %q, want none", g.comboText)
	}
	placeAt(g, 3, 1)
	if g.comboText != "Combo x2!" {
		t.Errorf("banner = %q, want %q", g.comboText, "Combo x2!")
	}
	if got := g.State().Score; got != 300 {
		t.Errorf("Score = %d, want 300", got)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !screen.Contains("Combo x2!") {
		t.Error("rendered screen missing combo banner")
	}

	g.Step(frame())
	g.Step(frame())
	if g.comboText == "" {
		t.Error("banner expired early")
	}
	g.Step(frame())
	if g.comboText != "" {
		t.Errorf("banner still shown after ComboTicks: %q", g.comboText)
	}
}

func TestGameOverAtReset(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: bar5})

	if !g.State().GameOver {
		t.Fatal("GameOver = false for a block wider than the board")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("Snapshot().State = %q, want %q", g.Snapshot().State, StateGameOver)
	}
	if res := g.Step(frame(platformcore.ActionPlace)); res.Placed {
		t.Error("placement accepted after game over")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !screen.Contains("GAME OVER") {
		t.Errorf("game over overlay missing:\n%s", screen.String())
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})

	res := g.Step(frame(platformcore.ActionPause, platformcore.ActionPlace))
	if res.Placed {
		t.Error("placement accepted while paused")
	}
	if !res.State.Paused {
		t.Error("State.Paused = false after pause")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !screen.Contains("PAUSED") {
		t.Error("pause overlay missing")
	}

	res = g.Step(frame(platformcore.ActionPause, platformcore.ActionPlace))
	if !res.Placed {
		t.Error("placement rejected after unpause")
	}
}

func TestHighScore(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})

	g.SetHighScore(500)
	g.SetHighScore(100)
	if g.HighScore() != 500 {
		t.Errorf("HighScore() = %d, want 500", g.HighScore())
	}

	g2 := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})
	g2.SetHighScore(50)
	for x := 0; x < 4; x++ {
		placeAt(g2, x, 0)
	}
	if g2.HighScore() != 100 {
		t.Errorf("HighScore() after beating it = %d, want 100", g2.HighScore())
	}
}

func TestRenderGhost(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})
	screen := platformcore.NewScreen(80, 24)

	// Board box is centered; cell (0,0) sits one column and row inside it.
	boardW, _ := g.boardBoxSize()
	px, py := (80-boardW)/2+1, hudHeight+1

	g.Render(screen)
	if c := screen.GetCell(px, py); c.Color != platformcore.ColorBrightGreen {
		t.Errorf("ghost color on free cell = %v, want %v", c.Color, platformcore.ColorBrightGreen)
	}

	placeAt(g, 0, 0)
	g.Render(screen)
	if c := screen.GetCell(px, py); c.Color != platformcore.ColorBrightRed {
		t.Errorf("ghost color on occupied cell = %v, want %v", c.Color, platformcore.ColorBrightRed)
	}
	if !screen.Contains("Score: 0") || !screen.Contains("Blast Test") {
		t.Errorf("HUD missing:\n%s", screen.String())
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithOptions(testMode, Options{
		Config: testConfig(8, 8, 3),
		Picker: core.NewSequencePicker(core.TrayEntry{Shape: mono}),
	})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %q, want %q", g.Snapshot().State, StatePausedSmall)
	}
	if res := g.Step(frame(platformcore.ActionPlace)); res.Placed {
		t.Error("placement accepted on a too-small screen")
	}

	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	if !screen.Contains("Window too small") {
		t.Error("too-small message missing")
	}
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	g := newTestGame(t, testConfig(4, 4, 1), Options{Logger: logger}, core.TrayEntry{Shape: mono})
	for x := 0; x < 4; x++ {
		placeAt(g, x, 0)
	}

	out := buf.String()
	for _, want := range []string{"lines cleared", "score changed", "game=blast_test"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRegisteredModes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, m := range Modes {
		if !registry.Exists(m.ID) {
			t.Errorf("mode %q not registered", m.ID)
		}
	}

	mk := func() *Game {
		g, err := registry.Create("blast_mini")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
		return g.(*Game)
	}

	a, b := mk(), mk()
	snap := a.Snapshot()
	if len(snap.Board) != 6 || len(snap.Board[0]) != 6 {
		t.Errorf("blast_mini board = %dx%d, want 6x6", len(snap.Board[0]), len(snap.Board))
	}
	if len(snap.Tray) != 2 {
		t.Errorf("blast_mini tray = %d slots, want 2", len(snap.Tray))
	}
	if strings.Join(snap.Tray, ",") != strings.Join(b.Snapshot().Tray, ",") {
		t.Errorf("same seed dealt %v and %v", snap.Tray, b.Snapshot().Tray)
	}

	var _ registry.HighScoreAware = a
	var _ registry.Controller = a
}

func TestResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 1), Options{}, core.TrayEntry{Shape: mono})
	placeAt(g, 2, 2)

	g.Resize(20, 10)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State after shrinking = %q, want %q", g.Snapshot().State, StatePausedSmall)
	}
	g.Resize(80, 24)
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State after growing = %q, want %q", snap.State, StatePlaying)
	}
	if snap.Board[2] != "..#." {
		t.Errorf("board row 2 = %q, want %q", snap.Board[2], "..#.")
	}
}

func TestSnapshotCountsFits(t *testing.T) {
	g := newTestGame(t, testConfig(4, 4, 2), Options{},
		core.TrayEntry{Shape: bar3}, core.TrayEntry{Shape: mono})

	if got := g.Snapshot().Fits; len(got) != 2 || got[0] != 8 || got[1] != 16 {
		t.Fatalf("Fits on an empty board = %v, want [8 16]", got)
	}

	if res := placeAt(g, 0, 0); !res.Placed {
		t.Fatal("bar3 at (0,0) not placed")
	}
	// Row 0 keeps three blocks; slot 0 is refilled with bar3.
	if got := g.Snapshot().Fits; got[0] != 6 || got[1] != 13 {
		t.Errorf("Fits after one placement = %v, want [6 13]", got)
	}
}
