package alphabeta

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fourup/fourup/board"
)

// treeTracer renders the traversal as an indented decision tree. It is just
// an Observer over the engine's own traversal, so the printed best move is
// always the move the engine would choose.
type treeTracer struct {
	w io.Writer
}

func indent(ply int) string {
	return strings.Repeat("|   ", ply)
}

func formatScore(score float64) string {
	if math.IsInf(score, 1) {
		return "+Inf"
	}
	if math.IsInf(score, -1) {
		return "-Inf"
	}
	return strconv.Itoa(int(score))
}

func (t *treeTracer) EnterMove(ply, col int, maximizing bool, symbol board.Cell, alpha, beta float64) {
	role := "Max"
	if !maximizing {
		role = "Min"
	}
	fmt.Fprintf(t.w, "%s├── Column %d (%s, %s)\n", indent(ply), col, role, symbol)
}

func (t *treeTracer) Leaf(ply int, score float64) {
	fmt.Fprintf(t.w, "%s└── Score: %s\n", indent(ply), formatScore(score))
}

func (t *treeTracer) Prune(ply, explored int) {
	word := "branch"
	if explored != 1 {
		word = "branches"
	}
	fmt.Fprintf(t.w, "%s│   └── Pruned (α ≥ β) after %d %s\n", indent(ply), explored, word)
}

// TraceSearch runs the search over a private copy of b, writing the decision
// tree to sink, and returns the selected column and its score. The caller's
// board is never mutated. The traversal, and therefore the selected move, is
// identical to what BestMove computes on the same position.
func TraceSearch(ctx context.Context, b *board.Board, aiSymbol board.Cell, depth int, sink io.Writer) (int, float64, error) {
	working := b.Copy()
	var stats SearchStats

	s := new(Solver)
	if err := s.Init(working, aiSymbol, &stats); err != nil {
		return NoMove, 0, err
	}
	s.SetObserver(&treeTracer{w: sink})
	s.rootDepth = clampDepth(depth)

	col, score, err := s.search(ctx, s.rootDepth, true, math.Inf(-1), math.Inf(1))
	if err != nil {
		return NoMove, 0, err
	}
	if col == NoMove {
		fmt.Fprintf(sink, "\nNo move available (score %s)\n", formatScore(score))
	} else {
		fmt.Fprintf(sink, "\nBest opening move: Column %d with score %s\n", col, formatScore(score))
	}
	return col, score, nil
}
