package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMap_MapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Input
	}{
		{"digit 1 is cell 0", runeKey('1'), core.CellInput(0)},
		{"digit 9 is cell 8", runeKey('9'), core.CellInput(8)},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.Input{Action: core.ActionUp}},
		{"vim down", runeKey('j'), core.Input{Action: core.ActionDown}},
		{"vim left", runeKey('h'), core.Input{Action: core.ActionLeft}},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.Input{Action: core.ActionRight}},
		{"enter places", tea.KeyMsg{Type: tea.KeyEnter}, core.Input{Action: core.ActionPlace}},
		{"space places", runeKey(' '), core.Input{Action: core.ActionPlace}},
		{"continue", runeKey('c'), core.Input{Action: core.ActionContinue}},
		{"reset", runeKey('r'), core.Input{Action: core.ActionReset}},
		{"history", tea.KeyMsg{Type: tea.KeyTab}, core.Input{Action: core.ActionHistory}},
		{"help", runeKey('?'), core.Input{Action: core.ActionHelp}},
		{"quit", runeKey('q'), core.Input{Action: core.ActionQuit}},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Input{Action: core.ActionQuit}},
		{"digit 0 is nothing", runeKey('0'), core.NoInput},
		{"unbound key", runeKey('z'), core.NoInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keys.MapKey(tc.msg))
		})
	}
}

func TestKeyMap_DisabledBindingsMapToNothing(t *testing.T) {
	// Given: continue and cell keys are switched off
	keys := DefaultKeyMap()
	keys.Continue.SetEnabled(false)
	keys.Cell.SetEnabled(false)

	// Then: those keys no longer translate
	assert.Equal(t, core.NoInput, keys.MapKey(runeKey('c')))
	assert.Equal(t, core.NoInput, keys.MapKey(runeKey('5')))
	assert.Equal(t, core.Input{Action: core.ActionReset}, keys.MapKey(runeKey('r')))
}

func TestKeyMap_MapMenuKey(t *testing.T) {
	keys := DefaultKeyMap()

	assert.Equal(t, core.Input{Action: core.ActionPlace}, keys.MapMenuKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, core.Input{Action: core.ActionStart}, keys.MapMenuKey(runeKey('s')))
	assert.Equal(t, core.Input{Action: core.ActionDown}, keys.MapMenuKey(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, core.Input{Action: core.ActionQuit}, keys.MapMenuKey(runeKey('q')))
	assert.Equal(t, core.NoInput, keys.MapMenuKey(runeKey('5')))
}

func TestMapMouse(t *testing.T) {
	hit := func(x, y int) (int, bool) {
		if x == 10 && y == 10 {
			return 4, true
		}
		return -1, false
	}
	press := tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	assert.Equal(t, core.CellInput(4), MapMouse(press, hit))

	miss := press
	miss.X = 0
	assert.Equal(t, core.NoInput, MapMouse(miss, hit))

	release := press
	release.Action = tea.MouseActionRelease
	assert.Equal(t, core.NoInput, MapMouse(release, hit))

	right := press
	right.Button = tea.MouseButtonRight
	assert.Equal(t, core.NoInput, MapMouse(right, hit))
}
