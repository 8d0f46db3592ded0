package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tictactoe/internal/storage"
	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

// History panel layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the panel beside the board
	historyWidth       = 40 // Panel width including border
	ledgerTimeout      = 2 * time.Second
)

// RoundLedger is the read side of the round ledger.
type RoundLedger interface {
	RecentRounds(ctx context.Context, matchID string, limit int) ([]storage.RoundEntry, error)
	Tally(ctx context.Context, matchID string) (storage.Tally, error)
}

// historyPanel lists the last rounds of the current match.
type historyPanel struct {
	ledger  RoundLedger
	limit   int
	table   table.Model
	entries []storage.RoundEntry
	tally   storage.Tally
	err     error
}

func newHistoryPanel(ledger RoundLedger, limit int) *historyPanel {
	h := &historyPanel{ledger: ledger, limit: limit}
	h.table = h.createTable(limit)
	return h
}

// createTable creates the round table with fixed columns.
func (h *historyPanel) createTable(height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Result", Width: 8},
		{Title: "Line", Width: 9},
		{Title: "Score", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// refresh reloads the rounds of matchID.
func (h *historyPanel) refresh(matchID string) {
	if h.ledger == nil {
		h.entries = nil
		h.updateTableRows()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
	defer cancel()

	h.entries, h.err = h.ledger.RecentRounds(ctx, matchID, h.limit)
	if h.err == nil {
		h.tally, h.err = h.ledger.Tally(ctx, matchID)
	}
	h.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (h *historyPanel) updateTableRows() {
	rows := make([]table.Row, len(h.entries))
	for i, e := range h.entries {
		result, line := "draw", "-"
		if e.Outcome.Status == tictactoe.Won {
			result = e.Outcome.Winner.String() + " won"
			line = e.Outcome.Line.String()
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.Round),
			result,
			line,
			fmt.Sprintf("%d-%d", e.Scores.X, e.Scores.O),
		}
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
}

// View renders the panel.
func (h *historyPanel) View() string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(historyWidth-2).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("ROUND HISTORY"))
	b.WriteString("\n\n")

	switch {
	case h.ledger == nil:
		b.WriteString(mutedStyle.Render("History is unavailable."))
	case h.err != nil:
		b.WriteString(mutedStyle.Render("Could not load history."))
	case len(h.entries) == 0:
		b.WriteString(mutedStyle.Render("No rounds finished yet."))
	default:
		b.WriteString(h.table.View())
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("X %d · O %d · draws %d", h.tally.WinsX, h.tally.WinsO, h.tally.Draws))
	}

	return panelStyle.Render(b.String())
}

var mutedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Italic(true)
