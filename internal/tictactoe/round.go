package tictactoe

import "fmt"

// Status is the lifecycle state of a round.
type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "win"
	case Drawn:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome describes how a round stands. Winner and Line are set only when
// Status is Won.
type Outcome struct {
	Status Status
	Winner Mark
	Line   Line
}

// Terminal reports whether the round has finished.
func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

// String formats the outcome for logs.
func (o Outcome) String() string {
	switch o.Status {
	case Won:
		return fmt.Sprintf("win(%s, %s)", o.Winner, o.Line)
	case Drawn:
		return "draw"
	default:
		return "in progress"
	}
}

// Move is one placed mark.
type Move struct {
	Index int
	Mark  Mark
}

// Round is the state of one game from empty board to win or draw.
// It is mutated only through ApplyMove.
type Round struct {
	board    Board
	occupied [3]Cells // indexed by Mark; slot 0 (Empty) stays unused
	current  Mark
	starter  Mark
	moves    []Move
	outcome  Outcome
}

// NewRound creates an empty round with starter to move first.
// An invalid starter defaults to X.
func NewRound(starter Mark) *Round {
	if !starter.Valid() {
		starter = X
	}
	return &Round{
		current: starter,
		starter: starter,
		moves:   make([]Move, 0, CellCount),
	}
}

// ApplyMove places player's mark on cell i.
//
// The win check runs before the draw check, so a ninth move that completes
// a line is a win. A failed move leaves the round untouched.
func (r *Round) ApplyMove(i int, player Mark) error {
	if r.outcome.Terminal() {
		return ErrRoundOver
	}
	if !ValidIndex(i) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	if r.board.Get(i) != Empty {
		return fmt.Errorf("%w: cell %d", ErrInvalidMove, i)
	}
	if player != r.current {
		return fmt.Errorf("%w: %s played, %s to move", ErrWrongTurn, player, r.current)
	}

	if err := r.board.Set(i, player); err != nil {
		return err
	}
	r.occupied[player] = r.occupied[player].Add(i)
	r.moves = append(r.moves, Move{Index: i, Mark: player})

	if line, ok := FindWinningLine(r.occupied[player]); ok {
		r.outcome = Outcome{Status: Won, Winner: player, Line: line}
		return nil
	}
	if len(r.moves) == CellCount {
		r.outcome = Outcome{Status: Drawn}
		return nil
	}

	r.current = player.Other()
	return nil
}

// CurrentPlayer returns the mark to move next. After a win it stays on the
// winner.
func (r *Round) CurrentPlayer() Mark {
	return r.current
}

// Starter returns the mark that opened the round.
func (r *Round) Starter() Mark {
	return r.starter
}

// Occupied returns the cells claimed by m.
func (r *Round) Occupied(m Mark) Cells {
	if !m.Valid() {
		return 0
	}
	return r.occupied[m]
}

// MoveCount returns the number of marks placed.
func (r *Round) MoveCount() int {
	return len(r.moves)
}

// Moves returns a copy of the moves in play order.
func (r *Round) Moves() []Move {
	out := make([]Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// Outcome returns the current outcome.
func (r *Round) Outcome() Outcome {
	return r.outcome
}

// Board returns a copy of the board.
func (r *Round) Board() Board {
	return r.board
}
