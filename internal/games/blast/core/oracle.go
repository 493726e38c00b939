package core

// CanPlaceAnywhere reports whether shape at rot fits at any origin on b.
func CanPlaceAnywhere(b *Board, s Shape, rot Rotation) bool {
	_, ok := FindPlacement(b, s, rot)
	return ok
}

// FindPlacement returns the first fitting origin in row-major order.
// Only origins that keep the bounding box on the board are tried.
func FindPlacement(b *Board, s Shape, rot Rotation) (Coord, bool) {
	w, h := s.Bounds(int(rot))
	if w == 0 || h == 0 {
		return Coord{}, false
	}
	maxX := b.Width() - w
	maxY := b.Height() - h
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			if b.CanPlace(s, rot, x, y) {
				return C(x, y), true
			}
		}
	}
	return Coord{}, false
}

// CountPlacements returns how many origins accept shape at rot.
func CountPlacements(b *Board, s Shape, rot Rotation) int {
	w, h := s.Bounds(int(rot))
	if w == 0 || h == 0 {
		return 0
	}
	count := 0
	for y := 0; y <= b.Height()-h; y++ {
		for x := 0; x <= b.Width()-w; x++ {
			if b.CanPlace(s, rot, x, y) {
				count++
			}
		}
	}
	return count
}

// IsGameOver returns true if no tray entry fits anywhere with its own rotation.
// Entries without a shape never fit and never keep the game alive.
func IsGameOver(b *Board, entries []TrayEntry) bool {
	for _, e := range entries {
		if e.Empty() {
			continue
		}
		if CanPlaceAnywhere(b, e.Shape, e.Rotation) {
			return false
		}
	}
	return true
}
