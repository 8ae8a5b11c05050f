package service

import (
	"errors"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// BotService picks a legal reply move for a bot seat, synchronously, given
// the current board.
type BotService interface {
	PickMove(board entity.Board, botMark string) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// PickMove searches the full game tree with minimax, so the bot plays
// perfectly: it wins when it can and never loses otherwise.
func (that *botService) PickMove(board entity.Board, botMark string) (int, error) {
	humanMark := entity.ToggleMark(botMark)

	bestScore := -2
	bestCell := -1

	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = botMark
		score := minimax(board, botMark, humanMark, false)
		board[i] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			bestCell = i
		}
	}

	if bestCell == -1 {
		return 0, ErrNoAvailableMoves
	}

	return bestCell, nil
}

func minimax(board entity.Board, botMark, humanMark string, maximizing bool) int {
	switch outcome := tictactoe.Evaluate(board); outcome.Winner {
	case botMark:
		return 1
	case humanMark:
		return -1
	case tictactoe.PlayerTie:
		return 0
	}

	if maximizing {
		best := -2
		for i, cell := range board {
			if cell != entity.EmptyCell {
				continue
			}

			board[i] = botMark
			if score := minimax(board, botMark, humanMark, false); score > best {
				best = score
			}
			board[i] = entity.EmptyCell
		}

		return best
	}

	best := 2
	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = humanMark
		if score := minimax(board, botMark, humanMark, true); score < best {
			best = score
		}
		board[i] = entity.EmptyCell
	}

	return best
}
