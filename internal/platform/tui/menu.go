package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

// MenuItem is one entry of the start menu.
type MenuItem struct {
	Title  string
	Action core.Action
}

var menuItems = []MenuItem{
	{Title: "Start game", Action: core.ActionStart},
	{Title: "Quit", Action: core.ActionQuit},
}

// MenuModel is the start screen shown before the first round.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	keys   KeyMap
	chosen core.Action
}

// NewMenuModel creates a new menu model.
func NewMenuModel(keys KeyMap, width, height int) MenuModel {
	return MenuModel{
		items:  menuItems,
		width:  width,
		height: height,
		keys:   keys,
		chosen: core.ActionNone,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleInput(m.keys.MapMenuKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleInput processes menu navigation.
func (m *MenuModel) handleInput(in core.Input) {
	switch in.Action {
	case core.ActionQuit, core.ActionStart:
		m.chosen = in.Action
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case core.ActionPlace:
		m.chosen = m.items[m.cursor].Action
	}
}

// Chosen returns the action picked by the player, or ActionNone.
func (m MenuModel) Chosen() core.Action {
	return m.chosen
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	// Vertically center the block
	top := core.Max(1, (m.height-len(m.items)-6)/2)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(titleStyle.Render("T I C   T A C   T O E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render("two players, one keyboard"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render("Up/Down: Navigate  |  Enter/S: Start  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
