package tui

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

// Options configures a play session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	// Store is the shared round ledger. Nil runs without history.
	Store  *storage.Store
	Logger *log.Logger
	// Sound plays cues. Nil stays silent.
	Sound Sounder
}

// GameModel is the board screen. It owns the match controller and the
// views the controller drives; all of them are pointers so the value
// copies Bubble Tea makes share one match.
type GameModel struct {
	ctrl    *tictactoe.Controller
	board   *boardView
	fx      *effects
	history *historyPanel
	sound   Sounder
	logger  *log.Logger

	screen      *core.Screen
	config      core.RuntimeConfig
	keys        KeyMap
	help        help.Model
	width       int
	height      int
	showHistory bool
	quitting    bool
}

// NewGameModel creates the board screen and its controller. No round is
// started until Start.
func NewGameModel(opts Options) GameModel {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = opts.Config.Display.TickRate

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sound := opts.Sound
	if sound == nil {
		sound = silent{}
	}

	board := newBoardView(cfg.ScreenW)
	fx := newEffects(cfg, opts.Config, sound)

	ctrlOpts := []tictactoe.Option{
		tictactoe.WithRandomSource(rand.New(rand.NewSource(cfg.Seed))), //nolint:gosec // starter choice only
		tictactoe.WithLogger(logger.WithPrefix("match")),
	}
	var ledger RoundLedger
	if opts.Store != nil {
		ctrlOpts = append(ctrlOpts, tictactoe.WithRecorder(opts.Store))
		ledger = opts.Store
	}

	m := GameModel{
		ctrl:    tictactoe.NewController(board, fx, ctrlOpts...),
		board:   board,
		fx:      fx,
		history: newHistoryPanel(ledger, opts.Config.History.Limit),
		sound:   sound,
		logger:  logger,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.syncKeys()
	return m
}

// Start begins the first round.
func (m GameModel) Start() GameModel {
	m.sound.Ring(CueClick)
	m.ctrl.StartRound()
	m.syncKeys()
	return m
}

// Init starts the tick loop that drives the effects.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.apply(m.keys.MapKey(msg))

	case tea.MouseMsg:
		cmd = m.apply(MapMouse(msg, m.board.cellAt))

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		if token, ok := m.fx.step(); ok && m.ctrl.ResultReady(token) {
			m.history.refresh(m.ctrl.MatchID())
		}
		cmd = tickCmd(m.config.TickRate)
	}

	m.syncKeys()
	return m, cmd
}

// apply performs one translated input.
func (m *GameModel) apply(in core.Input) tea.Cmd {
	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionHistory:
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.history.refresh(m.ctrl.MatchID())
		}
		m.resize(m.width, m.height)

	case core.ActionUp:
		m.board.moveCursor(-1, 0)
	case core.ActionDown:
		m.board.moveCursor(1, 0)
	case core.ActionLeft:
		m.board.moveCursor(0, -1)
	case core.ActionRight:
		m.board.moveCursor(0, 1)

	case core.ActionPlace:
		m.play(m.board.cursor)
	case core.ActionCell:
		m.board.setCursor(in.Cell)
		m.play(in.Cell)

	case core.ActionContinue:
		if m.ctrl.Phase() != tictactoe.PhaseAnnounced {
			return nil
		}
		m.sound.Ring(CueClick)
		m.fx.dismiss()
		m.ctrl.ContinueRound()

	case core.ActionReset:
		if m.ctrl.Phase() == tictactoe.PhaseIdle {
			return nil
		}
		m.sound.Ring(CueClick)
		m.fx.dismiss()
		m.ctrl.ResetMatch()
		m.history.refresh(m.ctrl.MatchID())
	}
	return nil
}

// play forwards a cell choice to the controller while the board accepts input.
func (m *GameModel) play(cell int) {
	if !m.board.inputEnabled() {
		return
	}
	if m.ctrl.PlayMove(cell) {
		m.sound.Ring(CueMark)
	}
}

// resize lays the board out for a new terminal size. The history panel
// takes the right side when there is room.
func (m *GameModel) resize(w, h int) {
	m.width, m.height = w, h
	m.config.ScreenW, m.config.ScreenH = w, h
	m.help.Width = w

	boardWidth := w
	if m.showHistory && w >= minWidthForSidebar {
		boardWidth = w - historyWidth
	}
	m.screen.Resize(boardWidth, core.Max(0, h-1))
	m.board.resize(boardWidth)
	m.fx.resize(boardWidth, h)
}

// syncKeys enables only the bindings that do something in the current phase,
// which also keeps the help bar honest.
func (m *GameModel) syncKeys() {
	phase := m.ctrl.Phase()
	playing := phase == tictactoe.PhasePlaying
	m.keys.Cell.SetEnabled(playing)
	m.keys.Place.SetEnabled(playing)
	m.keys.Continue.SetEnabled(phase == tictactoe.PhaseAnnounced)
	m.keys.Reset.SetEnabled(phase != tictactoe.PhaseIdle)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.ctrl.Snapshot()
	line, show, lit := m.fx.lineState()

	m.screen.Clear()
	m.board.draw(m.screen, snap.Scores, line, show, lit)
	m.drawStatus(snap)
	cx, cy := m.board.center()
	m.fx.draw(m.screen, cx, cy)

	view := RenderScreen(m.screen)
	if m.showHistory {
		if m.width >= minWidthForSidebar {
			view = lipgloss.JoinHorizontal(lipgloss.Top, view, m.history.View())
		} else {
			view = m.history.View()
		}
	}

	return view + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// drawStatus writes the line under the board.
func (m GameModel) drawStatus(snap tictactoe.Snapshot) {
	y := boardY + boardH + 1
	var text string
	color := core.ColorWhite

	switch snap.Phase {
	case tictactoe.PhasePlaying:
		text = "Player " + snap.CurrentPlayer.String() + " to move"
		color = markColor(snap.CurrentPlayer)
	case tictactoe.PhaseFinished, tictactoe.PhaseAnnounced:
		if snap.Outcome.Status == tictactoe.Won {
			text = fmt.Sprintf("Player %s takes round %d", snap.Outcome.Winner, snap.Round)
		} else {
			text = fmt.Sprintf("Round %d is a draw", snap.Round)
		}
		if m.fx.highlighting() {
			text += " ..."
		}
	}
	m.screen.DrawTextCentered(y, text, color)
}

// Snapshot exposes the match state, mostly for tests.
func (m GameModel) Snapshot() tictactoe.Snapshot {
	return m.ctrl.Snapshot()
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
