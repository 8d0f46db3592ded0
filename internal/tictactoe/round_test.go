package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playRound applies moves alternating from the round's starter.
func playRound(t *testing.T, r *Round, cells ...int) {
	t.Helper()
	for i, cell := range cells {
		require.NoError(t, r.ApplyMove(cell, r.CurrentPlayer()), "move %d (cell %d)", i, cell)
	}
}

func TestNewRound(t *testing.T) {
	r := NewRound(O)

	assert.Equal(t, O, r.CurrentPlayer())
	assert.Equal(t, O, r.Starter())
	assert.Equal(t, 0, r.MoveCount())
	assert.Equal(t, InProgress, r.Outcome().Status)
	assert.Equal(t, Board{}, r.Board())

	assert.Equal(t, X, NewRound(Empty).CurrentPlayer())
}

func TestRound_ApplyMove(t *testing.T) {
	t.Run("alternates turns", func(t *testing.T) {
		// Given: a round started by X
		r := NewRound(X)

		// When: X then O move
		require.NoError(t, r.ApplyMove(4, X))
		assert.Equal(t, O, r.CurrentPlayer())
		require.NoError(t, r.ApplyMove(0, O))

		// Then: the turn is back to X and both cells are recorded
		assert.Equal(t, X, r.CurrentPlayer())
		assert.Equal(t, 2, r.MoveCount())
		assert.Equal(t, CellsOf(4), r.Occupied(X))
		assert.Equal(t, CellsOf(0), r.Occupied(O))
		assert.Equal(t, []Move{{Index: 4, Mark: X}, {Index: 0, Mark: O}}, r.Moves())
	})

	t.Run("rejects occupied cell without changing state", func(t *testing.T) {
		// Given: X holds the centre
		r := NewRound(X)
		require.NoError(t, r.ApplyMove(4, X))
		before := *r
		beforeMoves := r.Moves()

		// When: O tries the same cell
		err := r.ApplyMove(4, O)

		// Then: ErrInvalidMove and nothing changed
		require.ErrorIs(t, err, ErrInvalidMove)
		assert.Equal(t, before.current, r.current)
		assert.Equal(t, before.occupied, r.occupied)
		assert.Equal(t, beforeMoves, r.Moves())
	})

	t.Run("rejects out-of-turn player", func(t *testing.T) {
		r := NewRound(X)

		err := r.ApplyMove(0, O)

		require.ErrorIs(t, err, ErrWrongTurn)
		assert.Equal(t, 0, r.MoveCount())
		assert.Equal(t, X, r.CurrentPlayer())
	})

	t.Run("rejects invalid index", func(t *testing.T) {
		r := NewRound(X)

		for _, i := range []int{-1, 9, 100} {
			require.ErrorIs(t, r.ApplyMove(i, X), ErrInvalidIndex)
		}
		assert.Equal(t, 0, r.MoveCount())
	})

	t.Run("occupied check precedes turn check", func(t *testing.T) {
		r := NewRound(X)
		require.NoError(t, r.ApplyMove(0, X))

		require.ErrorIs(t, r.ApplyMove(0, X), ErrInvalidMove)
	})
}

func TestRound_Win(t *testing.T) {
	// Given: O starts and claims the top row
	r := NewRound(O)

	// When: O->0, X->3, O->1, X->4, O->2
	playRound(t, r, 0, 3, 1, 4, 2)

	// Then: O wins on the first row and stays current
	out := r.Outcome()
	assert.Equal(t, Won, out.Status)
	assert.Equal(t, O, out.Winner)
	assert.Equal(t, Line{0, 1, 2}, out.Line)
	assert.Equal(t, O, r.CurrentPlayer())

	// And: the round accepts no more moves
	require.ErrorIs(t, r.ApplyMove(5, X), ErrRoundOver)
	require.ErrorIs(t, r.ApplyMove(5, O), ErrRoundOver)
	assert.Equal(t, 5, r.MoveCount())
}

func TestRound_Draw(t *testing.T) {
	// Given: X starts
	r := NewRound(X)

	// When: X:0,1,5,6,8 and O:2,3,4,7 fill the board without a line
	playRound(t, r, 0, 2, 1, 3, 5, 4, 6, 7, 8)

	// Then: the round is drawn
	out := r.Outcome()
	assert.Equal(t, Drawn, out.Status)
	assert.Equal(t, Empty, out.Winner)
	assert.Equal(t, CellCount, r.MoveCount())
	assert.True(t, r.Board().Full())
	require.ErrorIs(t, r.ApplyMove(0, X), ErrRoundOver)
}

func TestRound_WinOnNinthMoveBeatsDraw(t *testing.T) {
	// Given: X starts; after eight moves X needs cell 8 for the diagonal
	// X: 0, 2, 4, 7   O: 1, 3, 5, 6
	r := NewRound(X)
	playRound(t, r, 0, 1, 2, 3, 4, 5, 7, 6)
	require.Equal(t, 8, r.MoveCount())
	require.Equal(t, InProgress, r.Outcome().Status)

	// When: X fills the last cell
	require.NoError(t, r.ApplyMove(8, X))

	// Then: the full board is a win, never a draw
	out := r.Outcome()
	assert.Equal(t, CellCount, r.MoveCount())
	assert.Equal(t, Won, out.Status)
	assert.Equal(t, X, out.Winner)
	assert.Equal(t, Line{0, 4, 8}, out.Line)
}

func TestRound_Exclusivity(t *testing.T) {
	// Given: fixed move orders, played until the round ends
	orders := [][]int{
		{4, 0, 8, 2, 6, 1, 3, 5, 7},
		{0, 1, 2, 3, 4, 5, 6, 7, 8},
		{8, 7, 6, 5, 4, 3, 2, 1, 0},
		{1, 0, 4, 2, 7},
	}

	for _, order := range orders {
		r := NewRound(X)
		last := Empty
		for _, cell := range order {
			player := r.CurrentPlayer()
			if err := r.ApplyMove(cell, player); err != nil {
				require.ErrorIs(t, err, ErrRoundOver)
				break
			}

			// Then: marks never overlap and the count matches
			assert.False(t, r.Occupied(X).Intersects(r.Occupied(O)))
			assert.Equal(t, r.MoveCount(), r.Occupied(X).Len()+r.Occupied(O).Len())

			// And: turns strictly alternate while the round is open
			assert.NotEqual(t, last, player)
			last = player
		}
	}
}

func TestBoard(t *testing.T) {
	var b Board

	require.NoError(t, b.Set(3, X))
	assert.Equal(t, X, b.Get(3))
	require.ErrorIs(t, b.Set(3, O), ErrInvalidMove)
	require.ErrorIs(t, b.Set(9, O), ErrInvalidIndex)
	assert.Equal(t, Empty, b.Get(-1))

	b.Reset()
	assert.Equal(t, Board{}, b)

	assert.Equal(t, 1, Row(5))
	assert.Equal(t, 2, Col(5))
	assert.Equal(t, 7, Index(2, 1))
}

func TestMark(t *testing.T) {
	assert.Equal(t, O, X.Other())
	assert.Equal(t, X, O.Other())
	assert.Equal(t, Empty, Empty.Other())
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "O", O.String())
	assert.False(t, Empty.Valid())
}
