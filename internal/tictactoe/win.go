package tictactoe

import (
	"math/bits"
	"strings"
)

// Line is a triple of cell indices that wins the round when held by one mark.
type Line [3]int

// String formats the line as "[a b c]".
func (l Line) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, idx := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('0' + idx))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Contains reports whether cell i is part of the line.
func (l Line) Contains(i int) bool {
	return l[0] == i || l[1] == i || l[2] == i
}

// Lines lists the winning lines: rows, columns, then diagonals.
// FindWinningLine reports the first match in this order.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cells is a set of cell indices, one bit per cell.
type Cells uint16

// CellsOf builds a set from indices. Out-of-range indices are dropped.
func CellsOf(indices ...int) Cells {
	var c Cells
	for _, i := range indices {
		c = c.Add(i)
	}
	return c
}

// Add returns the set with cell i included.
func (c Cells) Add(i int) Cells {
	if !ValidIndex(i) {
		return c
	}
	return c | 1<<uint(i)
}

// Has reports whether cell i is in the set.
func (c Cells) Has(i int) bool {
	return ValidIndex(i) && c&(1<<uint(i)) != 0
}

// Len returns the number of cells in the set.
func (c Cells) Len() int {
	return bits.OnesCount16(uint16(c))
}

// Intersects reports whether the two sets share a cell.
func (c Cells) Intersects(other Cells) bool {
	return c&other != 0
}

// Indices returns the members in ascending order.
func (c Cells) Indices() []int {
	out := make([]int, 0, c.Len())
	for i := range CellCount {
		if c.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (l Line) cells() Cells {
	return CellsOf(l[0], l[1], l[2])
}

// FindWinningLine returns the first line in Lines fully contained in
// occupied. It is pure and safe to call with any set, including ones no
// legal game can produce.
func FindWinningLine(occupied Cells) (Line, bool) {
	for _, line := range Lines {
		lc := line.cells()
		if occupied&lc == lc {
			return line, true
		}
	}
	return Line{}, false
}
