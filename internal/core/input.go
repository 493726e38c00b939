package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move cursor up
	ActionDown            // S, Down arrow - move cursor down
	ActionLeft            // A, Left arrow - move cursor left
	ActionRight           // D, Right arrow - move cursor right
	ActionNextSlot        // Tab - select next tray slot
	ActionPrevSlot        // Shift+Tab - select previous tray slot
	ActionSlot1           // 1..5 - select tray slot directly
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionSlot5
	ActionPlace   // Space, Enter - place the selected block
	ActionHint    // H, ? - jump the cursor to a fitting origin
	ActionBack    // B, Escape - go back to menu
	ActionRestart // R key - restart game after game over
	ActionQuit    // Q, Ctrl+C - exit game/session
	ActionPause   // P - pause/unpause game
)

// MaxSlotActions is the number of direct slot-select actions.
const MaxSlotActions = 5

// SlotAction returns the direct-select action for tray slot i (0-based).
func SlotAction(i int) Action {
	if i < 0 || i >= MaxSlotActions {
		return ActionNone
	}
	return ActionSlot1 + Action(i)
}

// Slot returns the 0-based tray slot selected by a direct-select action.
func (a Action) Slot() (int, bool) {
	if a < ActionSlot1 || a > ActionSlot5 {
		return 0, false
	}
	return int(a - ActionSlot1), true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if i, ok := a.Slot(); ok {
		return "Slot" + string(rune('1'+i))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionNextSlot:
		return "NextSlot"
	case ActionPrevSlot:
		return "PrevSlot"
	case ActionPlace:
		return "Place"
	case ActionHint:
		return "Hint"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick,
// in the order they arrived. Cursor moves repeat, so order and count
// both matter.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Count returns how many times a was triggered this frame.
func (f InputFrame) Count(a Action) int {
	n := 0
	for _, got := range f.Actions {
		if got == a {
			n++
		}
	}
	return n
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
