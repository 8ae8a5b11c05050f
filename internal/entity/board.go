package entity

import "math/rand"

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "draw"

	EmptyCell = ""
)

// Board is the 3x3 grid in row-major order.
type Board [9]string

func NewBoard() Board {
	return Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
}

// IsValid reports whether every cell carries a known symbol.
func (that Board) IsValid() bool {
	for _, cell := range that {
		if cell != EmptyCell && cell != PlayerX && cell != PlayerO {
			return false
		}
	}

	return true
}

func IsValidMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// RandomMarks deals out the two marks in random order.
func RandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
