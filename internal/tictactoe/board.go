// Package tictactoe implements the rules engine for two-player noughts and
// crosses: the board, win detection, round transitions and the match
// controller that keeps score across rounds.
//
// The package has no knowledge of terminals or timing. Presentation is
// reached only through the Renderer and Presenter interfaces.
package tictactoe

import "fmt"

// CellCount is the number of cells on the board.
const CellCount = 9

// Mark is a player's symbol, or Empty for an unclaimed cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns the printable symbol for the mark.
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Other returns the opposing mark. Empty has no opponent.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Valid reports whether m is a player mark.
func (m Mark) Valid() bool {
	return m == X || m == O
}

// ValidIndex reports whether i addresses a board cell.
func ValidIndex(i int) bool {
	return i >= 0 && i < CellCount
}

// Board is the 3x3 grid in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [CellCount]Mark

// Get returns the mark at index i. Out-of-range indices read as Empty.
func (b Board) Get(i int) Mark {
	if !ValidIndex(i) {
		return Empty
	}
	return b[i]
}

// Set claims cell i for m. A cell can be set once until Reset.
func (b *Board) Set(i int, m Mark) error {
	if !ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if b[i] != Empty {
		return fmt.Errorf("%w: cell %d holds %s", ErrInvalidMove, i, b[i])
	}
	b[i] = m
	return nil
}

// Reset empties every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// Full reports whether every cell has a mark.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// Row and Col convert a cell index to its grid coordinates.
func Row(i int) int { return i / 3 }
func Col(i int) int { return i % 3 }

// Index converts grid coordinates to a cell index.
func Index(row, col int) int {
	return row*3 + col
}
