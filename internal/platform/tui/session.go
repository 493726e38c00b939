package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewScores
	viewGame
)

// SessionModel drives one remote client through the mode picker, the
// scoreboard and games without leaving the program.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger

	view       sessionView
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *Model
	played     int
	quitting   bool
}

// NewSessionModel starts a session on the mode picker. store and logger
// may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = wsm.Width, wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu rebuilds the picker so it shows fresh high scores.
func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.view = viewMenu
	m.game, m.scoreboard = nil, nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (SessionModel, tea.Cmd) {
	m.quitting = true
	m.logger.Debug("session quit", "games", m.played)
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view, m.scoreboard = viewScores, &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// Only reachable if the registry changed under the menu.
		m.logger.Error("cannot create game", "game", id, "err", err)
		return m.toMenu()
	}

	// A zero seed lets every deal, restarts included, pick a fresh one.
	cfg := m.menu.Config()
	cfg.Seed = 0
	m.config = cfg

	gm := NewModel(game, m.store, cfg, m.logger)
	m.view, m.game = viewGame, &gm
	m.played++
	m.logger.Info("game started", "game", id, "seed", gm.config.Seed)
	return m, gm.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.BackToMenu():
		st := m.game.GameState()
		m.logger.Info("game left", "game", m.game.game.ID(), "score", st.Score, "lines", st.Lines)
		return m.toMenu()
	case m.game.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

// View implements tea.Model.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
