package blast

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// LogEvents subscribes a logger to a session. Clears and score changes are
// logged at debug level and the end of the game at info.
func LogEvents(logger *log.Logger, gameID string, s *core.Session) (unsubscribe func()) {
	l := logger.With("game", gameID)
	return s.Subscribe(func(ev core.Event) {
		switch e := ev.(type) {
		case core.LinesCleared:
			l.Debug("lines cleared", "count", e.Count, "combo", e.Combo, "rows", e.Rows, "cols", e.Cols)
		case core.ScoreChanged:
			l.Debug("score changed", "score", e.Score)
		case core.TrayRefilled:
			l.Debug("tray refilled", "slots", e.Slots)
		case core.GameOver:
			l.Info("game over", "score", e.Score, "lines", e.Lines, "best_combo", e.BestCombo)
		}
	})
}
