package tictactoe

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "draw"

	EmptyCell = ""

	// WinnerNone means the game continues.
	WinnerNone = ""
)

// WinCombos are the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result of evaluating a board position.
type Result struct {
	Winner string // PlayerX, PlayerO, PlayerTie or WinnerNone
	Line   [3]int // winning triple indices, meaningful only for X/O wins
}

// Evaluate inspects a 9-cell board and reports the winning mark with its
// triple, a tie on a full board, or WinnerNone while the game continues.
// Pure and deterministic; a well-formed board is the caller's contract.
func Evaluate(board [9]string) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Winner: a, Line: combo}
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return Result{Winner: WinnerNone}
		}
	}

	return Result{Winner: PlayerTie}
}
