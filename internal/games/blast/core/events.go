package core

// Event is a notification published by a Session after a mutation commits.
type Event interface {
	sessionEvent()
}

// ScoreChanged is published whenever the score is set, including on reset.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) sessionEvent() {}

// LinesCleared is published when a placement completes one or more lines.
type LinesCleared struct {
	Count int
	Combo int
	Rows  []int
	Cols  []int
}

func (LinesCleared) sessionEvent() {}

// GameOver is published once when no tray entry fits the board.
type GameOver struct {
	Score     int
	Lines     int
	BestCombo int
}

func (GameOver) sessionEvent() {}

// TrayRefilled is published when consumed slots receive new entries.
type TrayRefilled struct {
	Slots []int
}

func (TrayRefilled) sessionEvent() {}

// Listener receives session events synchronously.
type Listener func(Event)
