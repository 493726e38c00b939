package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// palette holds the ANSI-256 code for every screen color.
var palette = map[core.Color]string{
	core.ColorRed:         "1",
	core.ColorOrange:      "208",
	core.ColorYellow:      "3",
	core.ColorGreen:       "2",
	core.ColorCyan:        "6",
	core.ColorBlue:        "4",
	core.ColorMagenta:     "5",
	core.ColorWhite:       "7",
	core.ColorGray:        "245",
	core.ColorDim:         "238",
	core.ColorBrightRed:   "9",
	core.ColorBrightGreen: "10",
	core.ColorBrightWhite: "15",
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	styles[core.ColorBrightWhite] = styles[core.ColorBrightWhite].Bold(true)
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := colorStyles[c]; ok {
		return st
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Cells are emitted in runs of one color; blank cells are never styled
// since their foreground is invisible.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	var run strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		runColor := core.ColorDefault
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == core.ColorDefault {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styleFor(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < w; x++ {
			cell := s.GetCell(x, y)
			c := cell.Color
			if cell.Rune == ' ' {
				c = core.ColorDefault
			}
			if c != runColor {
				flush()
				runColor = c
			}
			run.WriteRune(cell.Rune)
		}
		flush()
	}
	return sb.String()
}
