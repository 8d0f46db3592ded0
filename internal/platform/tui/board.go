package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

// Board geometry in terminal cells.
const (
	cellW  = 7
	cellH  = 3
	boardW = 3*cellW + 2 // two separator columns
	boardH = 3*cellH + 2 // two separator rows
	boardY = 5           // title, blank, players, blank, then the grid
)

var markArt = map[tictactoe.Mark][cellH]string{
	tictactoe.X: {"  ╲ ╱  ", "   ╳   ", "  ╱ ╲  "},
	tictactoe.O: {"  ╭─╮  ", "  │ │  ", "  ╰─╯  "},
}

// boardView is the on-screen board. It implements tictactoe.Renderer, so it
// only ever shows what the controller told it.
type boardView struct {
	marks   [tictactoe.CellCount]tictactoe.Mark
	current tictactoe.Mark
	enabled bool
	cursor  int
	width   int
}

var _ tictactoe.Renderer = (*boardView)(nil)

func newBoardView(width int) *boardView {
	return &boardView{cursor: 4, width: width}
}

func (b *boardView) SetCellMark(index int, m tictactoe.Mark) {
	if tictactoe.ValidIndex(index) {
		b.marks[index] = m
	}
}

func (b *boardView) SetCurrentPlayerIndicator(m tictactoe.Mark) {
	b.current = m
}

func (b *boardView) DisableInput() {
	b.enabled = false
}

func (b *boardView) ClearBoard() {
	b.marks = [tictactoe.CellCount]tictactoe.Mark{}
	b.enabled = true
}

// inputEnabled reports whether cell clicks should reach the controller.
func (b *boardView) inputEnabled() bool {
	return b.enabled
}

// moveCursor shifts the keyboard cursor, wrapping at the edges.
func (b *boardView) moveCursor(dRow, dCol int) {
	row := (tictactoe.Row(b.cursor) + dRow + 3) % 3
	col := (tictactoe.Col(b.cursor) + dCol + 3) % 3
	b.cursor = tictactoe.Index(row, col)
}

func (b *boardView) setCursor(i int) {
	if tictactoe.ValidIndex(i) {
		b.cursor = i
	}
}

func (b *boardView) resize(width int) {
	b.width = width
}

// origin is the top-left corner of the grid.
func (b *boardView) origin() (int, int) {
	return core.Max(0, (b.width-boardW)/2), boardY
}

// cellRect returns the screen area of cell i.
func (b *boardView) cellRect(i int) core.Rect {
	ox, oy := b.origin()
	return core.NewRect(
		ox+tictactoe.Col(i)*(cellW+1),
		oy+tictactoe.Row(i)*(cellH+1),
		cellW, cellH,
	)
}

// center returns the middle of the grid, where the result dialog opens.
func (b *boardView) center() (int, int) {
	ox, oy := b.origin()
	return core.NewRect(ox, oy, boardW, boardH).Center()
}

// cellAt hit-tests a mouse position. Separators belong to no cell.
func (b *boardView) cellAt(x, y int) (int, bool) {
	for i := range tictactoe.CellCount {
		if b.cellRect(i).Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// draw paints the players line, the grid and its marks. line is the winning
// line when show is set; lit picks the flash color for this tick.
func (b *boardView) draw(s *core.Screen, scores tictactoe.Scores, line tictactoe.Line, show, lit bool) {
	s.DrawTextCentered(1, "T I C   T A C   T O E", core.ColorBrightWhite)
	b.drawPlayers(s, scores)

	ox, oy := b.origin()
	for k := 1; k < 3; k++ {
		s.DrawHLine(ox, oy+k*(cellH+1)-1, boardW, '─', core.ColorGray)
		s.DrawVLine(ox+k*(cellW+1)-1, oy, boardH, '│', core.ColorGray)
	}
	for r := 1; r < 3; r++ {
		for c := 1; c < 3; c++ {
			s.SetColored(ox+c*(cellW+1)-1, oy+r*(cellH+1)-1, '┼', core.ColorGray)
		}
	}

	for i := range tictactoe.CellCount {
		b.drawCell(s, i, show && lit && line.Contains(i))
	}
}

// drawPlayers shows both labels; the idle player is dimmed.
func (b *boardView) drawPlayers(s *core.Screen, scores tictactoe.Scores) {
	x := fmt.Sprintf("PLAYER X  %d", scores.X)
	o := fmt.Sprintf("PLAYER O  %d", scores.O)
	ox, _ := b.origin()
	s.DrawText(ox, 3, x, b.labelColor(tictactoe.X))
	s.DrawText(ox+boardW-len(o), 3, o, b.labelColor(tictactoe.O))
}

func (b *boardView) labelColor(m tictactoe.Mark) core.Color {
	if b.current != m {
		return core.ColorGray
	}
	return markColor(m)
}

func (b *boardView) drawCell(s *core.Screen, i int, lit bool) {
	r := b.cellRect(i)
	mark := b.marks[i]

	if art, ok := markArt[mark]; ok {
		color := markColor(mark)
		if lit {
			color = core.ColorBrightYellow
		}
		for row, line := range art {
			s.DrawText(r.X, r.Y+row, line, color)
		}
	} else if b.enabled {
		// Digit hint for the keyboard
		cx, cy := r.Center()
		s.SetColored(cx, cy, rune('1'+i), core.ColorGray)
	}

	if b.enabled && i == b.cursor {
		_, cy := r.Center()
		s.SetColored(r.X, cy, '▸', core.ColorBrightYellow)
		s.SetColored(r.Right()-1, cy, '◂', core.ColorBrightYellow)
	}
}

func markColor(m tictactoe.Mark) core.Color {
	switch m {
	case tictactoe.X:
		return core.ColorBrightCyan
	case tictactoe.O:
		return core.ColorBrightMagenta
	default:
		return core.ColorDefault
	}
}
