// Package eval implements the static heuristic evaluation of a position for
// a given side. It is a pure function of the board.
package eval

import (
	"github.com/fourup/fourup/board"
)

// Window scores. The reward for our own three-with-a-gap (+120) deliberately
// outweighs the penalty for the opponent's (-100): the heuristic favors
// completing a near-win slightly over blocking one.
const (
	winScore        = 100000
	threeOpenScore  = 120
	threeThreatCost = 100
	twoOpenScore    = 10
)

// Evaluate sums the window score over every 4-cell window in all four line
// directions, from the perspective of symbol. Higher is better for symbol.
func Evaluate(b *board.Board, symbol board.Cell) int {
	opp := board.Opponent(symbol)
	score := 0

	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols-3; col++ {
			score += assessWindow(b, symbol, opp, row, col, 0, 1)
		}
	}
	for col := 0; col < board.Cols; col++ {
		for row := 0; row < board.Rows-3; row++ {
			score += assessWindow(b, symbol, opp, row, col, 1, 0)
		}
	}
	for row := 3; row < board.Rows; row++ {
		for col := 0; col < board.Cols-3; col++ {
			score += assessWindow(b, symbol, opp, row, col, -1, 1)
		}
	}
	for row := 3; row < board.Rows; row++ {
		for col := 3; col < board.Cols; col++ {
			score += assessWindow(b, symbol, opp, row, col, -1, -1)
		}
	}
	return score
}

// assessWindow scores the 4-cell window starting at (row, col) and stepping
// by (dr, dc).
func assessWindow(b *board.Board, symbol, opp board.Cell, row, col, dr, dc int) int {
	var symbolCount, oppCount, emptyCount int
	for i := 0; i < 4; i++ {
		switch b.At(row+i*dr, col+i*dc) {
		case symbol:
			symbolCount++
		case opp:
			oppCount++
		default:
			emptyCount++
		}
	}
	return scoreCounts(symbolCount, oppCount, emptyCount)
}

// scoreCounts applies the fixed scoring table to a window's cell counts.
func scoreCounts(symbolCount, oppCount, emptyCount int) int {
	score := 0
	switch {
	case oppCount == 4:
		score -= winScore
	case oppCount == 3 && emptyCount == 1:
		score -= threeThreatCost
	case oppCount == 2 && emptyCount == 2:
		score -= twoOpenScore
	}
	switch {
	case symbolCount == 4:
		score += winScore
	case symbolCount == 3 && emptyCount == 1:
		score += threeOpenScore
	case symbolCount == 2 && emptyCount == 2:
		score += twoOpenScore
	}
	return score
}
