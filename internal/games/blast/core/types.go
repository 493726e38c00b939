// Package core implements the block-placement engine: shape geometry,
// board occupancy with line clearing, and the placement feasibility search.
// It is UI-agnostic, deterministic and single-threaded.
package core

import (
	"fmt"
	"strings"
)

// Coord is a cell offset or board position.
// X grows to the right, Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Color is the display tag of a shape.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorMagenta
	ColorWhite
)

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorWhite:
		return "white"
	default:
		return "none"
	}
}

// ParseColor converts a color name to a Color.
// The empty string maps to ColorNone.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ColorNone, true
	case "red":
		return ColorRed, true
	case "orange":
		return ColorOrange, true
	case "yellow":
		return ColorYellow, true
	case "green":
		return ColorGreen, true
	case "cyan":
		return ColorCyan, true
	case "blue":
		return ColorBlue, true
	case "magenta", "purple":
		return ColorMagenta, true
	case "white":
		return ColorWhite, true
	default:
		return ColorNone, false
	}
}

