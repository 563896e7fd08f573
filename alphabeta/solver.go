// Package alphabeta implements the adversarial search core: depth-limited
// minimax with alpha-beta pruning over a gravity-drop board, with caller-owned
// search statistics and an optional per-node observer used by the tree tracer.
package alphabeta

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/fourup/fourup/board"
	"github.com/fourup/fourup/eval"
	"github.com/fourup/fourup/movegen"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	// NoMove is returned when a node produced no best column (terminal or
	// horizon nodes).
	NoMove = -1
	// MaxSearchDepth caps the recursion depth. Depth equals recursion depth,
	// so this bounds stack usage for callers that expose the knob.
	MaxSearchDepth = 12
)

// ErrNoLegalMove is returned when a move is requested on a full board.
// Callers should guard with IsFull and treat this as a terminal state.
var ErrNoLegalMove = errors.New("no legal move: board is full")

// Solver runs minimax with alpha-beta pruning for one side. It owns the board
// exclusively for the duration of a call: the board is mutated in place while
// descending and restored while ascending, so no other reader may touch it
// while a search is in flight.
type Solver struct {
	board    *board.Board
	aiSymbol board.Cell
	stats    *SearchStats
	observer Observer

	rootDepth int
}

// Init initializes the solver. stats is owned by the caller and is only ever
// appended to; Reset it between calls for per-call isolation.
func (s *Solver) Init(b *board.Board, aiSymbol board.Cell, stats *SearchStats) error {
	if stats == nil {
		return errors.New("stats must not be nil")
	}
	s.board = b
	s.aiSymbol = aiSymbol
	s.stats = stats
	return nil
}

// SetObserver attaches a per-node observer to the traversal.
func (s *Solver) SetObserver(o Observer) {
	s.observer = o
}

func clampDepth(depth int) int {
	if depth > MaxSearchDepth {
		log.Warn().Int("depth", depth).Int("max", MaxSearchDepth).
			Msg("clamping-search-depth")
		return MaxSearchDepth
	}
	if depth < 0 {
		return 0
	}
	return depth
}

// BestMove searches to the given depth and returns the best column for the
// solver's side. If the search produces no move (the position is already
// terminal, or the horizon is zero), it falls back to a uniformly random
// legal column; on a full board it returns ErrNoLegalMove.
func (s *Solver) BestMove(ctx context.Context, depth int) (int, error) {
	depth = clampDepth(depth)
	s.rootDepth = depth
	start := time.Now()

	col, score, err := s.search(ctx, depth, true, math.Inf(-1), math.Inf(1))
	if err != nil {
		return NoMove, err
	}
	log.Debug().
		Int("depth", depth).
		Int("nodes", s.stats.NodesExpanded).
		Float64("score", score).
		Float64("time-elapsed-sec", time.Since(start).Seconds()).
		Msg("search-returning")

	if col == NoMove {
		return s.randomMove()
	}

	// Record how much the chosen move shifts the static evaluation.
	before := eval.Evaluate(s.board, s.aiSymbol)
	row, perr := s.board.PlaceDisc(col, s.aiSymbol)
	if perr != nil {
		return NoMove, perr
	}
	after := eval.Evaluate(s.board, s.aiSymbol)
	s.board.RemoveDisc(row, col)
	s.stats.HeuristicDeltas = append(s.stats.HeuristicDeltas, after-before)

	return col, nil
}

// randomMove picks a uniformly random legal column.
func (s *Solver) randomMove() (int, error) {
	legal := movegen.Legal(s.board)
	if len(legal) == 0 {
		return NoMove, ErrNoLegalMove
	}
	return legal[frand.Intn(len(legal))], nil
}

// search is the single traversal shared by the engine and the tracer.
//
// The minimizing side evaluates positions through the maximizer's own
// evaluation function: the opponent is modeled as directly minimizing the
// AI's score rather than maximizing a score of its own. This departs from
// classical minimax and is preserved deliberately.
func (s *Solver) search(ctx context.Context, depth int, maximizing bool, alpha, beta float64) (int, float64, error) {
	if err := ctx.Err(); err != nil {
		return NoMove, 0, err
	}
	ply := s.rootDepth - depth

	s.stats.NodesExpanded++
	if depth > s.stats.SearchDepthUsed {
		s.stats.SearchDepthUsed = depth
	}

	if _, won := s.board.CheckWinner(s.aiSymbol); won {
		s.leaf(ply, math.Inf(1))
		return NoMove, math.Inf(1), nil
	}
	if _, won := s.board.CheckWinner(board.Opponent(s.aiSymbol)); won {
		s.leaf(ply, math.Inf(-1))
		return NoMove, math.Inf(-1), nil
	}

	moves := movegen.Ordered(s.board)
	s.stats.BranchingFactors = append(s.stats.BranchingFactors, len(moves))

	if depth == 0 || s.board.IsFull() {
		score := float64(eval.Evaluate(s.board, s.aiSymbol))
		s.leaf(ply, score)
		return NoMove, score, nil
	}

	mover := s.aiSymbol
	best := math.Inf(-1)
	if !maximizing {
		mover = board.Opponent(s.aiSymbol)
		best = math.Inf(1)
	}
	bestMove := NoMove
	explored := 0

	for _, col := range moves {
		explored++
		if s.observer != nil {
			s.observer.EnterMove(ply, col, maximizing, mover, alpha, beta)
		}
		value, err := s.exploreChild(ctx, col, mover, depth, !maximizing, alpha, beta)
		if err != nil {
			return NoMove, 0, err
		}
		// Strict comparisons: the first move reaching a tied best score
		// keeps it, which is the center-biased tie-break given the move
		// ordering.
		if maximizing {
			if value > best {
				best = value
				bestMove = col
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = col
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			if s.observer != nil {
				s.observer.Prune(ply, explored)
			}
			break
		}
	}
	return bestMove, best, nil
}

// exploreChild places mover's disc in col, recurses, and removes the disc.
// The removal is deferred so the board is restored on every exit path.
func (s *Solver) exploreChild(ctx context.Context, col int, mover board.Cell, depth int, maximizing bool, alpha, beta float64) (float64, error) {
	row, err := s.board.PlaceDisc(col, mover)
	if err != nil {
		// Unreachable for columns produced by the move orderer.
		return 0, err
	}
	defer s.board.RemoveDisc(row, col)
	_, value, err := s.search(ctx, depth-1, maximizing, alpha, beta)
	return value, err
}

func (s *Solver) leaf(ply int, score float64) {
	if s.observer != nil {
		s.observer.Leaf(ply, score)
	}
}

// BestMove is a convenience wrapper: it searches the given board to depth for
// aiSymbol, appending instrumentation to the caller-owned stats.
func BestMove(ctx context.Context, b *board.Board, aiSymbol board.Cell, depth int, stats *SearchStats) (int, error) {
	s := new(Solver)
	if err := s.Init(b, aiSymbol, stats); err != nil {
		return NoMove, err
	}
	return s.BestMove(ctx, depth)
}
