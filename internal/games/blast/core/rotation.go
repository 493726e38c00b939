package core

import "fmt"

// Rotation is a quarter-turn step: 0, 90, 180 or 270 degrees.
type Rotation uint8

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// NormalizeRotation reduces any step count into [0,3], negatives included.
func NormalizeRotation(steps int) Rotation {
	return Rotation(((steps % 4) + 4) % 4)
}

// Degrees returns the rotation angle in degrees.
func (r Rotation) Degrees() int {
	return int(r%4) * 90
}

// String returns the angle, e.g. "90°".
func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

// rotate applies the quarter-turn matrix for r to a single offset.
func (r Rotation) rotate(c Coord) Coord {
	switch r % 4 {
	case Rot90:
		return Coord{X: -c.Y, Y: c.X}
	case Rot180:
		return Coord{X: -c.X, Y: -c.Y}
	case Rot270:
		return Coord{X: c.Y, Y: -c.X}
	default:
		return c
	}
}
