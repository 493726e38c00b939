package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// actionBinding ties a key binding to the action it produces.
type actionBinding struct {
	key    key.Binding
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Bindings are checked in order; the first match wins.
type KeyMapper struct {
	quit     key.Binding
	slots    key.Binding
	bindings []actionBinding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	bind := func(a core.Action, help string, keys ...string) actionBinding {
		return actionBinding{
			key:    key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help)),
			action: a,
		}
	}

	return &KeyMapper{
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		slots: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "pick slot")),
		bindings: []actionBinding{
			bind(core.ActionUp, "up", "up", "w"),
			bind(core.ActionDown, "down", "down", "s"),
			bind(core.ActionLeft, "left", "left", "a"),
			bind(core.ActionRight, "right", "right", "d"),
			bind(core.ActionNextSlot, "next slot", "tab"),
			bind(core.ActionPrevSlot, "prev slot", "shift+tab"),
			bind(core.ActionPlace, "place", " ", "enter"),
			bind(core.ActionHint, "hint", "h", "?"),
			bind(core.ActionPause, "pause", "p"),
			bind(core.ActionBack, "back", "esc", "b"),
			bind(core.ActionRestart, "restart", "r"),
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	if key.Matches(msg, km.slots) {
		return core.SlotAction(int(msg.String()[0] - '1')), false
	}
	for _, b := range km.bindings {
		if key.Matches(msg, b.key) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuKeyMap holds the bindings shared by the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the mode picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "b", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
