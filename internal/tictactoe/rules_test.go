package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns PlayerX with the row when X completes the top row", func(t *testing.T) {
		// Given: a board with X on the whole top row
		board := [9]string{
			PlayerX, PlayerX, PlayerX,
			EmptyCell, PlayerO, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: X wins with the triple {0,1,2}
		assert.Equal(t, PlayerX, result.Winner)
		assert.Equal(t, [3]int{0, 1, 2}, result.Line)
	})

	t.Run("Returns PlayerO with the column when O completes a column", func(t *testing.T) {
		// Given: a board with O down the middle column
		board := [9]string{
			PlayerX, PlayerO, EmptyCell,
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerO, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: O wins with the triple {1,4,7}
		assert.Equal(t, PlayerO, result.Winner)
		assert.Equal(t, [3]int{1, 4, 7}, result.Line)
	})

	t.Run("Returns the winner on a diagonal", func(t *testing.T) {
		// Given: a board with X across the main diagonal
		board := [9]string{
			PlayerX, PlayerO, EmptyCell,
			PlayerO, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: X wins with the triple {0,4,8}
		assert.Equal(t, PlayerX, result.Winner)
		assert.Equal(t, [3]int{0, 4, 8}, result.Line)
	})

	t.Run("Returns PlayerTie on a full board with no winner", func(t *testing.T) {
		// Given: a full board where no triple is uniform
		board := [9]string{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the game is a draw
		assert.Equal(t, PlayerTie, result.Winner)
	})

	t.Run("Returns WinnerNone while the game continues", func(t *testing.T) {
		// Given: a board with empty cells and no winner
		board := [9]string{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: nobody has won yet
		assert.Equal(t, WinnerNone, result.Winner)
	})

	t.Run("Returns WinnerNone on an empty board", func(t *testing.T) {
		// Given: a fresh board
		board := [9]string{}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: nobody has won yet
		assert.Equal(t, WinnerNone, result.Winner)
	})

	t.Run("Reports a correct mark when several triples win at once", func(t *testing.T) {
		// Given: a board where X holds two winning triples
		board := [9]string{
			PlayerX, PlayerX, PlayerX,
			PlayerO, PlayerO, EmptyCell,
			PlayerX, PlayerX, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the reported mark is X, whichever triple is chosen
		assert.Equal(t, PlayerX, result.Winner)
		for _, index := range result.Line {
			assert.Equal(t, PlayerX, board[index])
		}
	})
}
