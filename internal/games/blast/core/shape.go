package core

import "fmt"

// Shape is an immutable polyomino in its canonical orientation.
// The zero value is the absent shape: it has no cells and never fits.
type Shape struct {
	id    string
	name  string
	color Color
	cells []Coord
}

// NewShape validates cells and returns a shape owning a private copy of them.
func NewShape(id string, color Color, cells ...Coord) (Shape, error) {
	if err := ValidateCells(cells); err != nil {
		return Shape{}, err
	}
	owned := make([]Coord, len(cells))
	copy(owned, cells)
	return Shape{id: id, name: id, color: color, cells: owned}, nil
}

// MustShape is NewShape for built-in content; it panics on invalid cells.
func MustShape(id string, color Color, cells ...Coord) Shape {
	s, err := NewShape(id, color, cells...)
	if err != nil {
		panic(fmt.Sprintf("core: shape %q: %v", id, err))
	}
	return s
}

// ValidateCells checks that cells are non-empty and pairwise distinct.
func ValidateCells(cells []Coord) error {
	if len(cells) == 0 {
		return &ValidationError{
			Code:    CodeEmptyShape,
			Message: "shape has no cells",
		}
	}
	seen := make(map[Coord]struct{}, len(cells))
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			return &ValidationError{
				Code:    CodeDuplicateCell,
				Message: fmt.Sprintf("cell %s appears more than once", c),
			}
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Validate reports whether s has at least one cell and no duplicates.
func Validate(s Shape) bool {
	return ValidateCells(s.cells) == nil
}

// ID returns the content identifier of the shape.
func (s Shape) ID() string { return s.id }

// Name returns the display name, defaulting to the ID.
func (s Shape) Name() string { return s.name }

// WithName returns a copy of s with a display name.
func (s Shape) WithName(name string) Shape {
	if name != "" {
		s.name = name
	}
	return s
}

// Color returns the display color tag.
func (s Shape) Color() Color { return s.color }

// Len returns the number of cells.
func (s Shape) Len() int { return len(s.cells) }

// IsZero reports whether s is the absent shape.
func (s Shape) IsZero() bool { return len(s.cells) == 0 }

// Cells returns a copy of the canonical cell offsets.
func (s Shape) Cells() []Coord {
	out := make([]Coord, len(s.cells))
	copy(out, s.cells)
	return out
}

// RotatedCells returns the offsets turned by steps quarter-turns.
// Steps are reduced modulo 4; cell order is preserved.
func (s Shape) RotatedCells(steps int) []Coord {
	if len(s.cells) == 0 {
		return nil
	}
	r := NormalizeRotation(steps)
	out := make([]Coord, len(s.cells))
	for i, c := range s.cells {
		out[i] = r.rotate(c)
	}
	return out
}

// NormalizedCells returns RotatedCells translated so min X and min Y are 0.
// It returns nil only for the absent shape.
func (s Shape) NormalizedCells(steps int) []Coord {
	cells := s.RotatedCells(steps)
	if len(cells) == 0 {
		return nil
	}
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	for i := range cells {
		cells[i] = cells[i].Add(-minX, -minY)
	}
	return cells
}

// Bounds returns the width and height of the rotated shape's bounding box.
func (s Shape) Bounds(steps int) (w, h int) {
	cells := s.NormalizedCells(steps)
	if len(cells) == 0 {
		return 0, 0
	}
	maxX, maxY := 0, 0
	for _, c := range cells {
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return maxX + 1, maxY + 1
}

// String returns the ID and cell count, e.g. "L3[3]".
func (s Shape) String() string {
	if s.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s[%d]", s.id, len(s.cells))
}
