// Package blast implements the block-placement puzzle as a registry.Game.
// The rules live in the core subpackage; this package maps platform actions
// onto a core.Session and draws it.
package blast

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/shapes"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// Mode describes a registered variant. Zero sizes fall back to the config.
type Mode struct {
	ID     string
	Title  string
	Width  int
	Height int
	Slots  int
}

// Modes lists every registered variant. The ID doubles as the score key.
var Modes = []Mode{
	{ID: "blast", Title: "Blast"},
	{ID: "blast_big", Title: "Blast (10x10)", Width: 10, Height: 10},
	{ID: "blast_mini", Title: "Blast Mini (6x6)", Width: 6, Height: 6, Slots: 2},
}

// Package-level options set from the CLI before any game starts.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	shapeSetID       string
	shapePath        string
	eventLogger      *log.Logger

	discardLogger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetShapeSet overrides the configured shape set. path may name a file or a
// directory of sets; both may be empty.
func SetShapeSet(id, path string) {
	shapeSetID = id
	shapePath = path
}

// SetLogger enables event logging for games created afterwards.
func SetLogger(l *log.Logger) {
	eventLogger = l
}

func init() {
	for _, m := range Modes {
		m := m // per-iteration copy (go 1.21 loop semantics)
		registry.Register(m.ID, func() registry.Game {
			return New(m)
		})
	}
}

// Options overrides what Reset would otherwise load from disk.
type Options struct {
	Config *config.BlastConfig // nil: LoadBlast with the package settings
	Shapes *shapes.Set         // nil: resolve from config
	Picker core.Picker         // nil: weighted picker over Shapes
	Logger *log.Logger         // nil: the package logger, if any
}

// Game is one blast play session as seen by the platform.
type Game struct {
	mode Mode
	opts Options

	cfg     config.BlastConfig
	set     shapes.Set
	diff    *config.DifficultyManager
	session *core.Session
	unsub   []func()

	tick    uint64
	screenW int
	screenH int

	selected  int
	cursor    core.Coord
	highScore int

	// Display colors of occupied cells. The board itself stores occupancy only.
	tint map[core.Coord]core.Color

	paused   bool
	tooSmall bool

	flash        []core.Coord
	flashTicks   int
	comboText    string
	comboTicks   int
	message      string
	messageTicks int

	// Tray preview box side in cells, fixed per Reset.
	previewSize int
}

// New creates a game for the given mode using package-level settings.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// NewWithOptions creates a game with explicit dependencies.
func NewWithOptions(mode Mode, opts Options) *Game {
	return &Game{mode: mode, opts: opts}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.mode.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.mode.Title }

// Description summarizes the mode's board and tray for menus.
func (g *Game) Description() string {
	def := config.DefaultBlastConfig()
	w, h, slots := g.mode.Width, g.mode.Height, g.mode.Slots
	if w <= 0 {
		w = def.Board.Width
	}
	if h <= 0 {
		h = def.Board.Height
	}
	if slots <= 0 {
		slots = def.Tray.Slots
	}
	return fmt.Sprintf("%dx%d board, %d pieces per tray", w, h, slots)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	for _, u := range g.unsub {
		u()
	}
	g.unsub = nil

	g.cfg = g.loadConfig()
	g.set = g.loadShapes()
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)

	rng := rand.New(rand.NewSource(rc.Seed))
	picker := g.opts.Picker
	if picker == nil {
		wp := g.set.Picker(rng)
		wp.RandomRotation = g.cfg.Tray.RandomRotation
		wp.LargeBoost = g.diff.LargeShapeBoost()
		wp.Level = g.level
		if !g.diff.Progressive() {
			fixed := g.diff.Level(config.Progress{})
			wp.Level = func() float64 { return fixed }
		}
		picker = wp
	}

	refill, _ := core.ParseRefillMode(g.cfg.Tray.Refill)
	g.session = nil
	session := core.NewSession(core.SessionConfig{
		Width:         g.cfg.Board.Width,
		Height:        g.cfg.Board.Height,
		Slots:         g.cfg.Tray.Slots,
		PointsPerLine: g.cfg.Scoring.PointsPerLine,
		Refill:        refill,
	}, picker)
	g.session = session

	g.unsub = append(g.unsub, session.Subscribe(g.onEvent))
	if logger := g.logger(); logger != discardLogger {
		g.unsub = append(g.unsub, LogEvents(logger, g.mode.ID, session))
	}

	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.flash = nil
	g.flashTicks = 0
	g.comboText = ""
	g.comboTicks = 0
	g.message = ""
	g.messageTicks = 0
	g.previewSize = g.maxShapeSize()
	g.tint = make(map[core.Coord]core.Color)

	g.selected = 0
	g.selectFirstAvailable()
	g.cursor = core.C(0, 0)
	g.clampCursor()

	// A tray dealt onto an empty board can still be unplayable on tiny grids.
	session.CheckGameOver()

	g.checkScreenSize()
}

// loadConfig applies mode overrides on top of the configured values.
func (g *Game) loadConfig() config.BlastConfig {
	var cfg config.BlastConfig
	if g.opts.Config != nil {
		cfg = *g.opts.Config
	} else {
		loaded, source, err := config.LoadBlastFrom(configPath)
		if err != nil {
			g.logWarn("config load failed, using defaults", "err", err)
			loaded, source = config.DefaultBlastConfig(), config.SourceEmbedded
		}
		g.logger().Debug("config loaded", "source", source)
		if difficultyPreset != "" {
			config.ApplyBlastPreset(&loaded, difficultyPreset)
		}
		if shapeSetID != "" {
			loaded.Shapes.Set = shapeSetID
		}
		if shapePath != "" {
			loaded.Shapes.Path = shapePath
		}
		cfg = loaded
	}

	if g.mode.Width > 0 {
		cfg.Board.Width = g.mode.Width
	}
	if g.mode.Height > 0 {
		cfg.Board.Height = g.mode.Height
	}
	if g.mode.Slots > 0 {
		cfg.Tray.Slots = g.mode.Slots
	}
	return cfg
}

func (g *Game) loadShapes() shapes.Set {
	if g.opts.Shapes != nil {
		return *g.opts.Shapes
	}
	set, err := shapes.Resolve(g.cfg.Shapes.Set, g.cfg.Shapes.Path)
	if err != nil {
		g.logWarn("shape set unavailable, using standard", "set", g.cfg.Shapes.Set, "err", err)
		return shapes.Default()
	}
	return set
}

func (g *Game) logWarn(msg string, kv ...any) {
	g.logger().Warn(msg, kv...)
}

// logger returns the per-game logger, then the package one, then a
// discarding logger.
func (g *Game) logger() *log.Logger {
	switch {
	case g.opts.Logger != nil:
		return g.opts.Logger
	case eventLogger != nil:
		return eventLogger
	}
	return discardLogger
}

// level feeds the picker's large-shape boost. The tray is dealt inside
// NewSession before the session is stored, hence the nil check.
func (g *Game) level() float64 {
	if g.session == nil {
		return g.diff.Level(config.Progress{})
	}
	return g.diff.Level(config.Progress{Score: g.session.Score(), Lines: g.session.Lines()})
}

// maxShapeSize returns the largest bounding side across the set.
func (g *Game) maxShapeSize() int {
	size := 1
	for _, s := range g.set.Shapes {
		w, h := s.Bounds(0)
		size = max(size, w, h)
	}
	return size
}

// checkScreenSize updates the tooSmall flag.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize adapts to a new terminal size without touching the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.decayTimers()

	if g.tooSmall || g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	placed := false
	for _, a := range in.Actions {
		if g.session.Phase() == core.PhaseOver {
			break
		}
		if a == platformcore.ActionPause {
			g.paused = !g.paused
			continue
		}
		if g.paused {
			continue
		}
		if g.handleAction(a) {
			placed = true
		}
	}

	return platformcore.StepResult{State: g.State(), Placed: placed}
}

// handleAction applies one action and reports whether a block was placed.
func (g *Game) handleAction(a platformcore.Action) bool {
	if slot, ok := a.Slot(); ok {
		g.selectSlot(slot)
		return false
	}

	switch a {
	case platformcore.ActionUp:
		g.moveCursor(0, -1)
	case platformcore.ActionDown:
		g.moveCursor(0, 1)
	case platformcore.ActionLeft:
		g.moveCursor(-1, 0)
	case platformcore.ActionRight:
		g.moveCursor(1, 0)
	case platformcore.ActionNextSlot:
		g.cycleSlot(1)
	case platformcore.ActionPrevSlot:
		g.cycleSlot(-1)
	case platformcore.ActionHint:
		g.showHint()
	case platformcore.ActionPlace:
		return g.place()
	}
	return false
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursor = g.cursor.Add(dx, dy)
	g.clampCursor()
}

// clampCursor keeps the normalized shape of the selected slot on the board.
func (g *Game) clampCursor() {
	w, h := 1, 1
	if e := g.session.Entry(g.selected); !e.Empty() {
		w, h = e.Shape.Bounds(int(e.Rotation))
	}
	b := g.session.Board()
	g.cursor.X = platformcore.Clamp(g.cursor.X, 0, max(0, b.Width()-w))
	g.cursor.Y = platformcore.Clamp(g.cursor.Y, 0, max(0, b.Height()-h))
}

// selectSlot selects slot i if it holds a block.
func (g *Game) selectSlot(i int) {
	if i < 0 || i >= g.session.Slots() {
		return
	}
	if g.session.Entry(i).Empty() {
		return
	}
	g.selected = i
	g.clampCursor()
}

// cycleSlot moves the selection to the next non-empty slot in direction dir.
func (g *Game) cycleSlot(dir int) {
	n := g.session.Slots()
	for step := 1; step <= n; step++ {
		i := ((g.selected+dir*step)%n + n) % n
		if !g.session.Entry(i).Empty() {
			g.selected = i
			g.clampCursor()
			return
		}
	}
}

// selectFirstAvailable keeps the current slot if it holds a block,
// otherwise picks the lowest non-empty slot.
func (g *Game) selectFirstAvailable() {
	if !g.session.Entry(g.selected).Empty() {
		return
	}
	for i, n := 0, g.session.Slots(); i < n; i++ {
		if !g.session.Entry(i).Empty() {
			g.selected = i
			return
		}
	}
}

func (g *Game) showHint() {
	c, ok := g.session.Hint(g.selected)
	if !ok {
		g.setMessage("No fit for this block")
		return
	}
	g.cursor = c
}

// place commits the selected block at the cursor.
func (g *Game) place() bool {
	turn, err := g.session.RequestPlacement(g.selected, g.cursor.X, g.cursor.Y)
	if err != nil {
		g.setMessage("Can't place there")
		return false
	}
	g.paint(turn)
	g.selectFirstAvailable()
	g.clampCursor()
	return true
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTicks = max(g.cfg.Display.FlashTicks*3, 1)
}

func (g *Game) decayTimers() {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = nil
		}
	}
	if g.comboTicks > 0 {
		g.comboTicks--
		if g.comboTicks == 0 {
			g.comboText = ""
		}
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
}

// onEvent schedules presentation effects. Occupancy is already final here.
func (g *Game) onEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.LinesCleared:
		lc := core.LineClear{Rows: e.Rows, Cols: e.Cols}
		g.flash = lc.Cells(g.cfg.Board.Width, g.cfg.Board.Height)
		g.flashTicks = g.cfg.Display.FlashTicks
		if e.Combo >= 2 {
			g.comboText = fmt.Sprintf("Combo x%d!", e.Combo)
			g.comboTicks = g.cfg.Display.ComboTicks
		}
	case core.ScoreChanged:
		if e.Score > g.highScore {
			g.highScore = e.Score
		}
	case core.TrayRefilled:
		g.selectFirstAvailable()
	case core.GameOver:
		g.paused = false
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:     g.session.Score(),
		Lines:     g.session.Lines(),
		BestCombo: g.session.BestCombo(),
		GameOver:  g.session.Phase() == core.PhaseOver,
		Paused:    g.paused,
	}
}

// SetHighScore seeds the best score. It never lowers it.
func (g *Game) SetHighScore(score int) {
	if score > g.highScore {
		g.highScore = score
	}
}

// HighScore returns the best score seen so far.
func (g *Game) HighScore() int { return g.highScore }

// Session exposes the underlying rules session.
func (g *Game) Session() *core.Session { return g.session }

// Selected returns the selected tray slot.
func (g *Game) Selected() int { return g.selected }

// Cursor returns the placement origin under the cursor.
func (g *Game) Cursor() core.Coord { return g.cursor }
