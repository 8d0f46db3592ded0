package tictactoe

import "errors"

var (
	// ErrInvalidMove is returned when the target cell is already claimed.
	ErrInvalidMove = errors.New("cell is already occupied")

	// ErrWrongTurn is returned when a mark plays out of turn.
	ErrWrongTurn = errors.New("it's not this player's turn")

	// ErrInvalidIndex is returned for cell indices outside 0..8.
	ErrInvalidIndex = errors.New("invalid cell index")

	// ErrRoundOver is returned for moves after a win or draw.
	ErrRoundOver = errors.New("round is already finished")
)
