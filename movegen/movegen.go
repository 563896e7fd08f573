// Package movegen enumerates and orders candidate columns. Ordering is
// center-outward and fully deterministic; it improves pruning yield but never
// changes the minimax value.
package movegen

import (
	"github.com/fourup/fourup/board"
)

// priorityOrder lists columns center-first. Searching the center early makes
// alpha-beta cutoffs much more likely on this board shape.
var priorityOrder = [board.Cols]int{3, 2, 4, 1, 5, 0, 6}

// Legal returns the playable columns in ascending column order.
func Legal(b *board.Board) []int {
	moves := make([]int, 0, board.Cols)
	for col := 0; col < board.Cols; col++ {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// Ordered returns the playable columns in fixed center-outward priority.
func Ordered(b *board.Board) []int {
	moves := make([]int, 0, board.Cols)
	for _, col := range priorityOrder {
		if b.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}
