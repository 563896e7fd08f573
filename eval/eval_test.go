package eval

import (
	"testing"

	"github.com/matryer/is"

	"github.com/fourup/fourup/board"
)

func TestScoreCountsTable(t *testing.T) {
	is := is.New(t)
	type tc struct {
		symbol, opp, empty int
		want               int
	}
	cases := []tc{
		{0, 4, 0, -100000},
		{0, 3, 1, -100},
		{0, 2, 2, -10},
		{4, 0, 0, 100000},
		{3, 0, 1, 120},
		{2, 0, 2, 10},
		{1, 0, 3, 0},
		{0, 1, 3, 0},
		{2, 2, 0, 0},
		{1, 2, 1, 0},
		{3, 1, 0, 0},
	}
	for _, c := range cases {
		is.Equal(scoreCounts(c.symbol, c.opp, c.empty), c.want)
	}
}

func TestEvaluateEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	is.Equal(Evaluate(b, board.Player1), 0)
	is.Equal(Evaluate(b, board.Player2), 0)
}

func TestEvaluateAsymmetry(t *testing.T) {
	is := is.New(t)
	// Three discs in a row on the bottom with both ends open. The owner sees
	// the +120 bonus in the two completing windows; the opponent sees only
	// the -100 penalty. The asymmetry is part of the heuristic.
	b := board.NewBoard()
	for col := 2; col <= 4; col++ {
		b.PlaceDisc(col, board.Player1)
	}
	own := Evaluate(b, board.Player1)
	other := Evaluate(b, board.Player2)
	is.True(own > 0)
	is.True(other < 0)
	is.True(own != -other) // +120 vs -100 per three-with-gap window
}

func TestEvaluateSingleCenterDisc(t *testing.T) {
	is := is.New(t)
	// A lone disc participates in no 2+ windows, so the score is zero.
	b := board.NewBoard()
	b.PlaceDisc(3, board.Player1)
	is.Equal(Evaluate(b, board.Player1), 0)
	is.Equal(Evaluate(b, board.Player2), 0)
}

func TestEvaluateCompletedRun(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	for col := 0; col < 4; col++ {
		b.PlaceDisc(col, board.Player2)
	}
	is.True(Evaluate(b, board.Player2) >= 100000)
	is.True(Evaluate(b, board.Player1) <= -100000)
}

func TestEvaluateMirrorsPairScore(t *testing.T) {
	is := is.New(t)
	// Two adjacent discs with two open cells in the same window: the 2+2 case
	// is symmetric (+10/-10).
	b := board.NewBoard()
	b.PlaceDisc(0, board.Player1)
	b.PlaceDisc(1, board.Player1)
	own := Evaluate(b, board.Player1)
	other := Evaluate(b, board.Player2)
	is.True(own > 0)
	is.Equal(own, -other)
}
