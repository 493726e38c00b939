package core

// DefaultPointsPerLine is the base award for one cleared line.
const DefaultPointsPerLine = 100

// Scorer tracks score and the consecutive-clear combo multiplier.
type Scorer struct {
	pointsPerLine int
	points        int
	combo         int
	bestCombo     int
	lines         int
}

// NewScorer creates a scorer; non-positive pointsPerLine uses the default.
func NewScorer(pointsPerLine int) *Scorer {
	if pointsPerLine <= 0 {
		pointsPerLine = DefaultPointsPerLine
	}
	return &Scorer{pointsPerLine: pointsPerLine}
}

// Apply records one turn's cleared lines and returns the points gained.
// A clearing turn raises the combo and multiplies by it; a dry turn resets it.
func (s *Scorer) Apply(lines int) int {
	if lines <= 0 {
		s.combo = 0
		return 0
	}
	s.combo++
	if s.combo > s.bestCombo {
		s.bestCombo = s.combo
	}
	s.lines += lines
	gained := lines * s.pointsPerLine * s.combo
	s.points += gained
	return gained
}

// Points returns the current score.
func (s *Scorer) Points() int { return s.points }

// Combo returns the current combo level (0 when the last turn cleared nothing).
func (s *Scorer) Combo() int { return s.combo }

// BestCombo returns the highest combo reached this game.
func (s *Scorer) BestCombo() int { return s.bestCombo }

// Lines returns the total number of lines cleared this game.
func (s *Scorer) Lines() int { return s.lines }

// PointsPerLine returns the base award.
func (s *Scorer) PointsPerLine() int { return s.pointsPerLine }

// Reset zeroes score, combo and counters.
func (s *Scorer) Reset() {
	s.points = 0
	s.combo = 0
	s.bestCombo = 0
	s.lines = 0
}
