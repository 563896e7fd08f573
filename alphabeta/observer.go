package alphabeta

import "github.com/fourup/fourup/board"

// Observer receives per-node events from the traversal. The search engine and
// the tree tracer share one traversal parameterized by an Observer, so a
// trace can never drift from what the engine actually searched.
//
// ply is the distance from the root (root = 0).
type Observer interface {
	// EnterMove fires before descending into a candidate column.
	EnterMove(ply, col int, maximizing bool, symbol board.Cell, alpha, beta float64)
	// Leaf fires when a node returns a terminal or horizon score without
	// descending further.
	Leaf(ply int, score float64)
	// Prune fires on an alpha-beta cutoff, with the number of sibling
	// branches explored before the cut.
	Prune(ply, explored int)
}
