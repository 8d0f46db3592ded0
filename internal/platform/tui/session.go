package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

// SessionModel manages the full session flow: start menu -> board.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	menu     MenuModel
	game     GameModel
	inGame   bool
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	game := NewGameModel(opts)
	return SessionModel{
		menu: NewMenuModel(DefaultKeyMap(), opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		game: game,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Both screens track the terminal size
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.menu, _ = m.menu.Update(wsm)
		m.game, _ = m.game.Update(wsm)
		return m, nil
	}

	if m.inGame {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates while the start menu is shown.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch m.menu.Chosen() {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionStart:
		m.inGame = true
		m.game = m.game.Start()
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while the board is shown.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.game, cmd = m.game.Update(msg)

	if m.game.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inGame {
		return m.game.View()
	}
	return m.menu.View()
}

// InGame reports whether the start menu has been left.
func (m SessionModel) InGame() bool {
	return m.inGame
}

// Run starts a local Bubble Tea program with a fresh session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Cell clicks
	)

	_, err := p.Run()
	return err
}
