package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

const (
	statsPanelMinWidth = 84  // Below this the stats collapse into one line
	statsPanelWidth    = 24  // Inner width of the stats panel
	scoreLimit         = 100 // Rows loaded per mode
)

var (
	boardTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardWarnStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boardEmptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMode, k.NextMode, k.Clear, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevMode, k.NextMode},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x x", "clear mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows saved runs per mode, with aggregate stats.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	current int
	store   *storage.Store
	scores  []storage.ScoreEntry
	stats   map[string]*storage.GameStats // Modes without runs are absent
	err     error                         // Last storage failure, shown in place of rows

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width  int
	height int

	armed     bool // First clear key seen; the next one deletes
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard starting on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.refresh()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

// newTable sizes the score table to the space left by the stats panel.
func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= statsPanelWidth + 6
	}
	dateW := max(min(avail-34, 20), 12)

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 10},
		{Title: "Lines", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Played", Width: dateW},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refresh reloads rows for the current mode and stats for every mode.
func (m *ScoreboardModel) refresh() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		m.scores, m.err = m.store.TopScores(m.mode().ID, scoreLimit)
		if m.err == nil {
			m.stats, m.err = m.store.GetAllGamesStats()
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		combo := "-"
		if s.BestCombo > 1 {
			combo = fmt.Sprintf("x%d", s.BestCombo)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Lines),
			combo,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) mode() registry.GameInfo {
	if len(m.modes) == 0 {
		return registry.GameInfo{}
	}
	return m.modes[m.current]
}

func (m *ScoreboardModel) shift(dir int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + dir + len(m.modes)) % len(m.modes)
	m.refresh()
}

// clear deletes every run and the best score of the current mode.
func (m *ScoreboardModel) clear() {
	if m.store == nil || len(m.modes) == 0 {
		return
	}
	if err := m.store.ClearScores(m.mode().ID); err != nil {
		m.err = err
		return
	}
	m.refresh()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		armed := m.armed
		m.armed = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if armed {
				m.clear()
			} else {
				m.armed = len(m.scores) > 0
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.rowsView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardFrameStyle.Render(m.statsPanel()))
	} else if line := m.statsLine(); line != "" {
		b.WriteString(centerText(boardLabelStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.armed {
		prompt := fmt.Sprintf("Press x again to delete every %s score", m.mode().Title)
		b.WriteString(centerText(boardWarnStyle.Render(prompt), m.width))
	} else {
		b.WriteString(centerText(m.help.View(m.keys), m.width))
	}
	return b.String()
}

// tabs renders the mode strip, falling back to "< Title >" when it overflows.
func (m ScoreboardModel) tabs() string {
	if len(m.modes) == 0 {
		return boardLabelStyle.Render("No modes registered")
	}
	parts := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			parts[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-2 {
		return boardActiveTabStyle.Render(fmt.Sprintf("< %s >", m.mode().Title))
	}
	return line
}

func (m ScoreboardModel) rowsView() string {
	switch {
	case m.err != nil:
		return boardEmptyStyle.Render("Scores unavailable:\n" + m.err.Error())
	case m.store == nil:
		return boardEmptyStyle.Render("Scores are not being saved.")
	case len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nClear some lines to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) currentStats() *storage.GameStats {
	if st, ok := m.stats[m.mode().ID]; ok && st.GamesCount > 0 {
		return st
	}
	return nil
}

// statsPanel lists the current mode's aggregates one per line.
func (m ScoreboardModel) statsPanel() string {
	st := m.currentStats()
	if st == nil {
		return lipgloss.NewStyle().Width(statsPanelWidth).Render(boardLabelStyle.Render("No runs yet"))
	}

	row := func(label, value string) string {
		pad := max(statsPanelWidth-lipgloss.Width(label)-lipgloss.Width(value), 1)
		return boardLabelStyle.Render(label) + strings.Repeat(" ", pad) + value
	}
	lines := []string{
		row("Games", fmt.Sprintf("%d", st.GamesCount)),
		row("Best", fmt.Sprintf("%d", st.HighScore)),
		row("Average", fmt.Sprintf("%.0f", st.AvgScore)),
		row("Lines", fmt.Sprintf("%d", st.TotalLines)),
		row("Best combo", fmt.Sprintf("x%d", max(st.BestCombo, 1))),
	}
	if !st.LastPlayed.IsZero() {
		lines = append(lines, row("Last", st.LastPlayed.Local().Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// statsLine is the narrow-terminal form of statsPanel.
func (m ScoreboardModel) statsLine() string {
	st := m.currentStats()
	if st == nil {
		return ""
	}
	return fmt.Sprintf("Best %d  |  %d games  |  avg %.0f  |  %d lines  |  combo x%d",
		st.HighScore, st.GamesCount, st.AvgScore, st.TotalLines, max(st.BestCombo, 1))
}

// Focus selects the given mode if it is registered.
func (m *ScoreboardModel) Focus(gameID string) {
	for i, g := range m.modes {
		if g.ID == gameID {
			m.current = i
			m.refresh()
			return
		}
	}
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen, starting on gameID when set.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int, gameID string) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	if gameID != "" {
		model.Focus(gameID)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
