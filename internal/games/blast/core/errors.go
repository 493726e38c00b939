package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is matched by every shape ValidationError.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrIllegalPlacement reports a placement that does not fit the board.
	ErrIllegalPlacement = errors.New("illegal placement")

	// ErrGameOver is returned for placement requests after the session ended.
	ErrGameOver = errors.New("game over")

	// ErrSlotOutOfRange is returned for tray indices outside the tray.
	ErrSlotOutOfRange = errors.New("tray slot out of range")

	// ErrEmptySlot is returned when a consumed tray slot is requested.
	ErrEmptySlot = errors.New("tray slot is empty")
)

// Validation error codes.
const (
	CodeEmptyShape    = "EMPTY_SHAPE"
	CodeDuplicateCell = "DUPLICATE_CELL"
)

// ValidationError contains details about shape validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrInvalidShape) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidShape
}

// PlacementError describes a placement that violated CanPlace.
type PlacementError struct {
	ShapeID  string
	Rotation Rotation
	Origin   Coord
	Cell     Coord // First offending board cell
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("illegal placement of %q rot=%s at %s: cell %s is occupied or out of bounds",
		e.ShapeID, e.Rotation, e.Origin, e.Cell)
}

// Unwrap returns ErrIllegalPlacement.
func (e *PlacementError) Unwrap() error {
	return ErrIllegalPlacement
}
