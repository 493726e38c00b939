package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the renderer. Block colors come first so that shape
// color tags map onto them one to one.
const (
	ColorDefault Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorMagenta
	ColorWhite
	ColorGray
	ColorDim
	ColorBrightRed
	ColorBrightGreen
	ColorBrightWhite
)

var colorNames = [...]string{
	ColorDefault:     "default",
	ColorRed:         "red",
	ColorOrange:      "orange",
	ColorYellow:      "yellow",
	ColorGreen:       "green",
	ColorCyan:        "cyan",
	ColorBlue:        "blue",
	ColorMagenta:     "magenta",
	ColorWhite:       "white",
	ColorGray:        "gray",
	ColorDim:         "dim",
	ColorBrightRed:   "bright-red",
	ColorBrightGreen: "bright-green",
	ColorBrightWhite: "bright-white",
}

// String returns the palette name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
