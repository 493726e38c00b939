package core

// LineClear lists the rows and columns removed by one clear pass.
type LineClear struct {
	Rows []int
	Cols []int
}

// Count returns rows plus columns; intersecting lines count separately.
func (lc LineClear) Count() int {
	return len(lc.Rows) + len(lc.Cols)
}

// Cells returns the union of all cleared cells, each listed once.
func (lc LineClear) Cells(w, h int) []Coord {
	seen := make(map[Coord]struct{})
	var out []Coord
	add := func(c Coord) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, y := range lc.Rows {
		for x := 0; x < w; x++ {
			add(C(x, y))
		}
	}
	for _, x := range lc.Cols {
		for y := 0; y < h; y++ {
			add(C(x, y))
		}
	}
	return out
}

// FullRows returns the indices of completely occupied rows.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < b.h; y++ {
		full := true
		for x := 0; x < b.w; x++ {
			if !b.cells[b.index(x, y)] {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// FullCols returns the indices of completely occupied columns.
func (b *Board) FullCols() []int {
	var cols []int
	for x := 0; x < b.w; x++ {
		full := true
		for y := 0; y < b.h; y++ {
			if !b.cells[b.index(x, y)] {
				full = false
				break
			}
		}
		if full {
			cols = append(cols, x)
		}
	}
	return cols
}

// ClearLines finds every full row and column on the current snapshot and
// then frees them all in one pass.
func (b *Board) ClearLines() LineClear {
	lc := LineClear{
		Rows: b.FullRows(),
		Cols: b.FullCols(),
	}
	for _, y := range lc.Rows {
		for x := 0; x < b.w; x++ {
			b.cells[b.index(x, y)] = false
		}
	}
	for _, x := range lc.Cols {
		for y := 0; y < b.h; y++ {
			b.cells[b.index(x, y)] = false
		}
	}
	return lc
}

// ClearCompletedLines clears all full lines and returns how many were cleared.
func (b *Board) ClearCompletedLines() int {
	return b.ClearLines().Count()
}
