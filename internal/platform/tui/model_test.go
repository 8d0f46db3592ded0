package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tictactoe/internal/storage"
	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

func newTestGame(t *testing.T, withStore bool) (GameModel, *recordingSounder) {
	t.Helper()
	cfg, rt := testConfig()
	sound := &recordingSounder{}
	opts := Options{Config: cfg, Runtime: rt, Sound: sound}
	if withStore {
		store, err := storage.OpenMemory()
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		opts.Store = store
	}
	return NewGameModel(opts), sound
}

func press(t *testing.T, m GameModel, keys ...rune) GameModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(runeKey(k))
	}
	return m
}

// tickUntil feeds ticks until the phase is reached or the budget runs out.
func tickUntil(t *testing.T, m GameModel, phase tictactoe.Phase) GameModel {
	t.Helper()
	for range 100 {
		if m.Snapshot().Phase == phase {
			return m
		}
		m, _ = m.Update(TickMsg{})
	}
	require.Equal(t, phase, m.Snapshot().Phase)
	return m
}

func TestGameModel_IgnoresCellsBeforeStart(t *testing.T) {
	m, _ := newTestGame(t, false)

	m = press(t, m, '5')

	snap := m.Snapshot()
	assert.Equal(t, tictactoe.PhaseIdle, snap.Phase)
	assert.Zero(t, snap.MoveCount)
}

func TestGameModel_FullRound(t *testing.T) {
	// Given: a started game
	m, sound := newTestGame(t, true)
	m = m.Start()
	require.Equal(t, tictactoe.PhasePlaying, m.Snapshot().Phase)
	starter := m.Snapshot().Starter

	// When: the starter takes the top row by keyboard (cells 1, 2, 3)
	m = press(t, m, '1', '4', '2', '5', '3')

	// Then: the round is finished and input is off
	snap := m.Snapshot()
	assert.Equal(t, tictactoe.PhaseFinished, snap.Phase)
	assert.Equal(t, tictactoe.Won, snap.Outcome.Status)
	assert.Equal(t, starter, snap.Outcome.Winner)
	assert.Equal(t, 1, snap.Scores.Get(starter))
	assert.False(t, m.board.inputEnabled())

	// And: further digits change nothing
	m = press(t, m, '9')
	assert.Equal(t, 5, m.Snapshot().MoveCount)

	// And: the status line trails off while the line flashes
	assert.Contains(t, m.View(), "takes round 1 ...")

	// When: the highlight runs out
	m = tickUntil(t, m, tictactoe.PhaseAnnounced)

	// Then: click, five marks and the win rang in that order
	assert.Equal(t, []Cue{CueClick, CueMark, CueMark, CueMark, CueMark, CueMark, CueWin}, sound.cues)

	assert.NotContains(t, m.View(), "takes round 1 ...")

	// And: the dialog shows once it has grown
	for range 3 {
		m, _ = m.Update(TickMsg{})
	}
	assert.Contains(t, m.View(), "PLAYER "+starter.String()+" WON")

	// When: continuing
	m = press(t, m, 'c')

	// Then: a new round with the score kept
	snap = m.Snapshot()
	assert.Equal(t, tictactoe.PhasePlaying, snap.Phase)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 1, snap.Scores.Get(starter))
	assert.Zero(t, snap.MoveCount)
	assert.True(t, m.board.inputEnabled())
	_, show, _ := m.fx.lineState()
	assert.False(t, show)
}

func TestGameModel_ContinueOnlyAfterResult(t *testing.T) {
	m, _ := newTestGame(t, false)
	m = m.Start()

	m = press(t, m, 'c')
	assert.Equal(t, 1, m.Snapshot().Round)

	m = press(t, m, '1', '4', '2', '5', '3', 'c')
	assert.Equal(t, tictactoe.PhaseFinished, m.Snapshot().Phase)
	assert.Equal(t, 1, m.Snapshot().Round)
}

func TestGameModel_Reset(t *testing.T) {
	m, _ := newTestGame(t, false)
	m = m.Start()
	m = press(t, m, '1', '4', '2', '5', '3')
	m = tickUntil(t, m, tictactoe.PhaseAnnounced)
	before := m.Snapshot().MatchID

	m = press(t, m, 'r')

	snap := m.Snapshot()
	assert.Equal(t, tictactoe.Scores{}, snap.Scores)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, tictactoe.PhasePlaying, snap.Phase)
	assert.NotEqual(t, before, snap.MatchID)
}

func TestGameModel_CursorAndMouse(t *testing.T) {
	m, _ := newTestGame(t, false)
	m = m.Start()

	// Arrow keys move the cursor, enter places on it
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Snapshot().Board.Get(0).Valid())

	// A click on cell 8 places there
	r := m.board.cellRect(8)
	m, _ = m.Update(tea.MouseMsg{X: r.X + 1, Y: r.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Snapshot().Board.Get(8).Valid())
	assert.Equal(t, 2, m.Snapshot().MoveCount)
}

func TestGameModel_History(t *testing.T) {
	m, _ := newTestGame(t, true)
	m = m.Start()
	m = press(t, m, '1', '4', '2', '5', '3')
	m = tickUntil(t, m, tictactoe.PhaseAnnounced)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	require.True(t, m.showHistory)
	require.Len(t, m.history.entries, 1)
	assert.Equal(t, 1, m.history.tally.Rounds)
	assert.Contains(t, m.View(), "ROUND HISTORY")

	// A reset opens a new match with an empty history
	m = press(t, m, 'r')
	assert.Empty(t, m.history.entries)
}

func TestGameModel_HistoryWithoutStore(t *testing.T) {
	m, _ := newTestGame(t, false)
	m = m.Start()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Contains(t, m.View(), "History is unavailable.")
}

func TestGameModel_Quit(t *testing.T) {
	m, _ := newTestGame(t, false)

	m, cmd := m.Update(runeKey('q'))

	assert.True(t, m.IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestSessionModel_MenuToGame(t *testing.T) {
	cfg, rt := testConfig()
	s := NewSessionModel(Options{Config: cfg, Runtime: rt})
	require.Contains(t, s.View(), "Start game")

	next, cmd := s.Update(runeKey('s'))
	s = next.(SessionModel)

	assert.True(t, s.InGame())
	assert.NotNil(t, cmd)
	assert.Equal(t, tictactoe.PhasePlaying, s.game.Snapshot().Phase)
}

func TestSessionModel_MenuQuit(t *testing.T) {
	cfg, rt := testConfig()
	s := NewSessionModel(Options{Config: cfg, Runtime: rt})

	// Down to "Quit", then enter
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)

	assert.False(t, s.InGame())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
