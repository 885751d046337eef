package game

import (
	"github.com/okybr/tictacgo-backend/internal"
)

// The 8 winning lines, checked rows first, then columns, then diagonals.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CheckWinner returns the symbol occupying the first fully uniform winning
// line, or SymbolNone when no line is complete. In a legal game at most one
// symbol can complete a line, so check order does not change the result.
func CheckWinner(board internal.Board) internal.Symbol {
	for _, line := range winningLines {
		a, b, c := line[0], line[1], line[2]
		if board[a] != internal.SymbolNone && board[a] == board[b] && board[a] == board[c] {
			return board[a]
		}
	}
	return internal.SymbolNone
}

// IsFull reports whether every cell is occupied.
func IsFull(board internal.Board) bool {
	for _, cell := range board {
		if cell == internal.SymbolNone {
			return false
		}
	}
	return true
}
