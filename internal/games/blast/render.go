package blast

import (
	"fmt"
	"slices"

	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

const (
	cellWidth = 2 // Screen columns per board cell
	hudHeight = 2
)

var (
	blockGlyph   = []rune("██")
	emptyGlyph   = []rune("· ")
	ghostGlyph   = []rune("▓▓")
	blockedGlyph = []rune("░░")
	flashGlyph   = []rune("▒▒")
)

// layoutSize returns the minimum screen size for the current board and tray.
func (g *Game) layoutSize() (w, h int) {
	boardW, boardH := g.boardBoxSize()
	trayW, trayH := g.trayBoxSize()
	return max(boardW, trayW), hudHeight + boardH + 1 + trayH
}

func (g *Game) boardBoxSize() (w, h int) {
	return g.cfg.Board.Width*cellWidth + 2, g.cfg.Board.Height + 2
}

func (g *Game) slotBoxSize() (w, h int) {
	return g.previewSize*cellWidth + 2, g.previewSize + 2
}

func (g *Game) trayBoxSize() (w, h int) {
	sw, sh := g.slotBoxSize()
	n := max(g.cfg.Tray.Slots, 1)
	return n*sw + (n - 1), sh
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	screen := platformcore.NewRect(0, 0, g.screenW, g.screenH)
	boardW, boardH := g.boardBoxSize()
	trayW, trayH := g.trayBoxSize()

	board := screen.CenterIn(boardW, boardH)
	board.Y = hudHeight
	tray := screen.CenterIn(trayW, trayH)
	tray.Y = board.Bottom() + 1

	g.renderHUD(dst, board)
	g.renderBoard(dst, board)
	g.renderStatusLine(dst, board.Bottom())
	g.renderTray(dst, tray)
	g.renderControls(dst)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws the title, score, best, combo and line count.
func (g *Game) renderHUD(dst *platformcore.Screen, board platformcore.Rect) {
	dst.DrawTextCenteredWithColor(0, g.Title(), platformcore.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d", g.session.Score())
	dst.DrawText(board.X, 1, score)

	best := fmt.Sprintf("Best: %d", max(g.highScore, g.session.Score()))
	bestX := board.Right() - len(best)
	dst.DrawTextWithColor(bestX, 1, best, platformcore.ColorYellow)

	info := fmt.Sprintf("x%d  L%d", g.session.Combo(), g.session.Lines())
	infoX := board.CenterIn(len(info), 1).X
	if infoX > board.X+len(score) && infoX+len(info) < bestX {
		dst.DrawTextWithColor(infoX, 1, info, platformcore.ColorGray)
	}
}

// renderBoard draws the grid, placed blocks, flash cells and the ghost.
func (g *Game) renderBoard(dst *platformcore.Screen, board platformcore.Rect) {
	b := g.session.Board()
	dst.DrawBox(board, platformcore.ColorGray)

	cell := func(x, y int, glyph []rune, c platformcore.Color) {
		px := board.X + 1 + x*cellWidth
		py := board.Y + 1 + y
		for i, r := range glyph {
			dst.SetWithColor(px+i, py, r, c)
		}
	}

	for y, h := 0, b.Height(); y < h; y++ {
		for x, w := 0, b.Width(); x < w; x++ {
			if b.IsOccupied(x, y) {
				cell(x, y, blockGlyph, g.tintAt(core.C(x, y)))
			} else {
				cell(x, y, emptyGlyph, platformcore.ColorDim)
			}
		}
	}

	for _, c := range g.flash {
		if !b.IsOccupied(c.X, c.Y) {
			cell(c.X, c.Y, flashGlyph, platformcore.ColorBrightWhite)
		}
	}

	if g.session.Phase() == core.PhaseOver || g.paused {
		return
	}
	e := g.session.Entry(g.selected)
	if e.Empty() {
		return
	}
	color := platformcore.ColorBrightRed
	glyph := blockedGlyph
	if g.session.CanPlace(g.selected, g.cursor.X, g.cursor.Y) {
		color = platformcore.ColorBrightGreen
		glyph = ghostGlyph
	}
	for _, c := range e.Shape.NormalizedCells(int(e.Rotation)) {
		p := c.Add(g.cursor.X, g.cursor.Y)
		if b.InBounds(p.X, p.Y) {
			cell(p.X, p.Y, glyph, color)
		}
	}
}

// renderStatusLine shows the combo banner or the latest message under the board.
func (g *Game) renderStatusLine(dst *platformcore.Screen, y int) {
	switch {
	case g.comboText != "":
		dst.DrawTextCenteredWithColor(y, g.comboText, platformcore.ColorYellow)
	case g.message != "":
		dst.DrawTextCenteredWithColor(y, g.message, platformcore.ColorBrightRed)
	}
}

// renderTray draws one preview box per slot; the selected one is highlighted.
func (g *Game) renderTray(dst *platformcore.Screen, tray platformcore.Rect) {
	sw, sh := g.slotBoxSize()
	trayY := tray.Y
	for i, e := range g.session.Tray() {
		x := tray.X + i*(sw+1)
		frame := platformcore.ColorGray
		if i == g.selected {
			frame = platformcore.ColorYellow
		}
		dst.DrawBox(platformcore.NewRect(x, trayY, sw, sh), frame)
		dst.DrawTextWithColor(x+1, trayY, fmt.Sprintf("%d", i+1), frame)

		if e.Empty() {
			dst.DrawTextWithColor(x+sw/2-1, trayY+sh/2, "--", platformcore.ColorDim)
			continue
		}

		w, h := e.Shape.Bounds(int(e.Rotation))
		offX := x + 1 + (g.previewSize-w)*cellWidth/2
		offY := trayY + 1 + (g.previewSize-h)/2
		color := blockColor(e.Shape.Color())
		for _, c := range e.Shape.NormalizedCells(int(e.Rotation)) {
			for j, r := range blockGlyph {
				dst.SetWithColor(offX+c.X*cellWidth+j, offY+c.Y, r, color)
			}
		}
	}
}

func (g *Game) renderControls(dst *platformcore.Screen) {
	_, h := g.layoutSize()
	if g.screenH > h {
		dst.DrawTextCenteredWithColor(g.screenH-1, g.Controls(), platformcore.ColorDim)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	if g.session.Phase() == core.PhaseOver {
		scoreStr := fmt.Sprintf("Score: %d", g.session.Score())
		bestStr := fmt.Sprintf("Best: %d", max(g.highScore, g.session.Score()))
		g.drawOverlay(dst, board, "GAME OVER", scoreStr, bestStr, "R: restart")
		return
	}

	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "P: resume")
	}
}

// drawOverlay draws a boxed block of lines centered on area.
func (g *Game) drawOverlay(dst *platformcore.Screen, area platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.CenterIn(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)

	for i, line := range lines {
		x := box.CenterIn(len(line), 1).X
		dst.DrawTextWithColor(x, box.Y+1+i, line, platformcore.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return fmt.Sprintf("Arrows: Move | Tab/1-%d: Select | Space: Place | H: Hint | P: Pause | R: Restart | Q: Quit",
		max(g.cfg.Tray.Slots, 1))
}

// tintAt returns the display color of an occupied board cell.
func (g *Game) tintAt(c core.Coord) platformcore.Color {
	if col, ok := g.tint[c]; ok {
		return blockColor(col)
	}
	return platformcore.ColorWhite
}

// paint records block colors for placed cells and drops cleared ones.
func (g *Game) paint(turn core.Turn) {
	if g.tint == nil {
		g.tint = make(map[core.Coord]core.Color)
	}
	for _, c := range turn.Cells {
		g.tint[c] = turn.Entry.Shape.Color()
	}
	for _, c := range turn.Cleared.Cells(g.cfg.Board.Width, g.cfg.Board.Height) {
		delete(g.tint, c)
	}
}

// blockColor maps a shape color tag onto the screen palette.
func blockColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorCyan:
		return platformcore.ColorCyan
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorMagenta:
		return platformcore.ColorMagenta
	default:
		return platformcore.ColorWhite
	}
}

// sortedFlash returns flash cells in row-major order.
func sortedFlash(cells []core.Coord) []core.Coord {
	out := slices.Clone(cells)
	slices.SortFunc(out, func(a, b core.Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}
