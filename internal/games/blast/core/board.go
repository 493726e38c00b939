package core

import (
	"fmt"
	"strings"
)

// Board is a fixed-size occupancy grid.
// Cells are stored in row-major order: index = y*w + x.
// Every accessor is bounds-checked; out-of-range cells read as occupied.
type Board struct {
	w     int
	h     int
	cells []bool
}

// NewBoard creates an empty w x h board. It panics on non-positive sizes.
func NewBoard(w, h int) *Board {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("core: invalid board size %dx%d", w, h))
	}
	return &Board{
		w:     w,
		h:     h,
		cells: make([]bool, w*h),
	}
}

// ParseBoard builds a board from text rows: '#' is occupied, '.' or ' ' is free.
// All rows must have the same width.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("parse board: no rows")
	}
	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.w {
			return nil, fmt.Errorf("parse board: row %d has width %d, want %d", y, len(row), b.w)
		}
		for x, ch := range row {
			switch ch {
			case '#', 'X', 'x':
				b.cells[b.index(x, y)] = true
			case '.', ' ':
			default:
				return nil, fmt.Errorf("parse board: unexpected %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return b, nil
}

// index converts a coordinate to a flat array index.
func (b *Board) index(x, y int) int {
	return y*b.w + x
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// InBounds returns true if (x, y) is inside the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// IsOccupied returns true if the cell is filled or outside the board.
func (b *Board) IsOccupied(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b.cells[b.index(x, y)]
}

// CanPlace reports whether every normalized cell of shape at rot lands on a
// free in-bounds cell when the shape's origin is (ox, oy).
func (b *Board) CanPlace(s Shape, rot Rotation, ox, oy int) bool {
	_, ok := b.firstBlocked(s, rot, ox, oy)
	return !ok
}

// firstBlocked returns the first board cell that prevents the placement.
func (b *Board) firstBlocked(s Shape, rot Rotation, ox, oy int) (Coord, bool) {
	cells := s.NormalizedCells(int(rot))
	if len(cells) == 0 {
		return C(ox, oy), true
	}
	for _, c := range cells {
		x, y := ox+c.X, oy+c.Y
		if b.IsOccupied(x, y) {
			return C(x, y), true
		}
	}
	return Coord{}, false
}

// Place marks every cell covered by the shape as occupied.
// Calling Place when CanPlace is false is a caller bug and panics with *PlacementError.
func (b *Board) Place(s Shape, rot Rotation, ox, oy int) {
	if cell, blocked := b.firstBlocked(s, rot, ox, oy); blocked {
		panic(&PlacementError{ShapeID: s.ID(), Rotation: rot, Origin: C(ox, oy), Cell: cell})
	}
	for _, c := range s.NormalizedCells(int(rot)) {
		b.cells[b.index(ox+c.X, oy+c.Y)] = true
	}
}

// Reset frees every cell.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = false
	}
}

// OccupiedCount returns the number of filled cells.
func (b *Board) OccupiedCount() int {
	count := 0
	for _, filled := range b.cells {
		if filled {
			count++
		}
	}
	return count
}

// FreeCount returns the number of empty cells.
func (b *Board) FreeCount() int {
	return len(b.cells) - b.OccupiedCount()
}

// IsEmpty returns true if no cell is occupied.
func (b *Board) IsEmpty() bool {
	return b.OccupiedCount() == 0
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return &Board{w: b.w, h: b.h, cells: cells}
}

// Equal returns true if two boards have the same size and occupancy.
func (b *Board) Equal(other *Board) bool {
	if b.w != other.w || b.h != other.h {
		return false
	}
	for i, filled := range b.cells {
		if filled != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the board as text rows, the inverse of ParseBoard.
func (b *Board) Rows() []string {
	rows := make([]string, b.h)
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		for x := 0; x < b.w; x++ {
			if b.cells[b.index(x, y)] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// String renders the board as newline-separated rows.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
