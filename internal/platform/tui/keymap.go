package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

// KeyMap defines the key bindings for the menu and the board.
// It centralizes bindings, feeds the help bar and keeps mapping testable.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Place    key.Binding
	Cell     key.Binding
	Start    key.Binding
	Continue key.Binding
	Reset    key.Binding
	History  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cell, k.Place, k.Continue, k.Reset, k.History, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Cell, k.Place},
		{k.Continue, k.Reset},
		{k.History, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		Cell: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "cell"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "start"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key on the board screen to an input.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Cell):
		return core.CellInput(int(msg.String()[0] - '1'))
	case key.Matches(msg, k.Up):
		return core.Input{Action: core.ActionUp}
	case key.Matches(msg, k.Down):
		return core.Input{Action: core.ActionDown}
	case key.Matches(msg, k.Left):
		return core.Input{Action: core.ActionLeft}
	case key.Matches(msg, k.Right):
		return core.Input{Action: core.ActionRight}
	case key.Matches(msg, k.Place):
		return core.Input{Action: core.ActionPlace}
	case key.Matches(msg, k.Continue):
		return core.Input{Action: core.ActionContinue}
	case key.Matches(msg, k.Reset):
		return core.Input{Action: core.ActionReset}
	case key.Matches(msg, k.History):
		return core.Input{Action: core.ActionHistory}
	case key.Matches(msg, k.Help):
		return core.Input{Action: core.ActionHelp}
	}
	return core.NoInput
}

// MapMenuKey translates a key on the start menu to an input.
// Enter is reported as ActionPlace so the menu can act on its cursor;
// s always starts.
func (k KeyMap) MapMenuKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Up):
		return core.Input{Action: core.ActionUp}
	case key.Matches(msg, k.Down):
		return core.Input{Action: core.ActionDown}
	case key.Matches(msg, k.Place):
		return core.Input{Action: core.ActionPlace}
	case key.Matches(msg, k.Start):
		return core.Input{Action: core.ActionStart}
	}
	return core.NoInput
}

// MapMouse translates a left click to a board cell via hit.
func MapMouse(msg tea.MouseMsg, hit func(x, y int) (int, bool)) core.Input {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.NoInput
	}
	if cell, ok := hit(msg.X, msg.Y); ok {
		return core.CellInput(cell)
	}
	return core.NoInput
}
