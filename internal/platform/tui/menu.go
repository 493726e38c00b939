package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuFrameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// menuLogo is drawn with the same glyph the board uses for blocks.
var menuLogo = []string{
	"█▀▄ █   ▄▀▄ ▄▀▀ ▀█▀",
	"█▀▄ █   █▀█ ▀▀▄  █ ",
	"▀▀  ▀▀▀ ▀ ▀ ▀▀   ▀ ",
}

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	HighScore   int
	Games       int
}

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model

	selected       *MenuItem // Set when the player picks a mode
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered mode with its stored results.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		// Best effort; the menu works without history.
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if game, err := registry.Create(g.ID); err == nil {
			if d, ok := game.(registry.Describer); ok {
				item.Description = d.Description()
			}
		}
		if st, ok := stats[g.ID]; ok {
			item.Games = st.GamesCount
		}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.HighScore = best
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if len(m.items) > 0 {
			m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
		}

	case key.Matches(msg, m.keys.Down):
		if len(m.items) > 0 {
			m.cursor = (m.cursor + 1) % len(m.items)
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var body strings.Builder
	for _, line := range menuLogo {
		body.WriteString(menuTitleStyle.Render(line))
		body.WriteString("\n")
	}
	body.WriteString("\n")

	if len(m.items) == 0 {
		body.WriteString(menuMutedStyle.Render("No modes registered"))
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%-18s %8s", item.Title, bestLabel(item.HighScore))
		if i == m.cursor {
			body.WriteString(menuSelectedStyle.Render("> " + line))
		} else {
			body.WriteString("  " + line)
		}
		body.WriteString("\n")
	}

	if len(m.items) > 0 {
		item := m.items[m.cursor]
		body.WriteString("\n")
		body.WriteString(menuMutedStyle.Render(item.Description))
		if item.Games > 0 {
			body.WriteString("\n")
			body.WriteString(menuMutedStyle.Render(fmt.Sprintf("%d games played", item.Games)))
		}
	}

	frame := menuFrameStyle.Render(body.String())
	footer := m.help.View(m.keys)

	view := lipgloss.JoinVertical(lipgloss.Center, frame, "", footer)
	if m.width <= 0 || m.height <= 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

func bestLabel(score int) string {
	if score <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", score)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured without
// ANSI escapes so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
