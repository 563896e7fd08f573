package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/fourup/fourup/alphabeta"
	"github.com/fourup/fourup/board"
	"github.com/fourup/fourup/ml"
	"github.com/fourup/fourup/movegen"
)

// Agent selects a column for the given side. Implementations may keep
// per-game state and are not safe for concurrent use; each worker builds
// its own agents.
type Agent interface {
	Name() string
	SelectMove(ctx context.Context, b *board.Board, symbol board.Cell) (int, error)
}

// FindWinningMove returns a column that wins immediately for symbol, if one
// exists. The board is restored before returning.
func FindWinningMove(b *board.Board, symbol board.Cell) (int, bool) {
	for _, col := range movegen.Legal(b) {
		row, err := b.PlaceDisc(col, symbol)
		if err != nil {
			continue
		}
		_, won := b.CheckWinner(symbol)
		b.RemoveDisc(row, col)
		if won {
			return col, true
		}
	}
	return 0, false
}

func randomLegal(b *board.Board) (int, error) {
	legal := movegen.Legal(b)
	if len(legal) == 0 {
		return 0, alphabeta.ErrNoLegalMove
	}
	return legal[frand.Intn(len(legal))], nil
}

// RandomAgent plays a uniformly random legal column.
type RandomAgent struct{}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) SelectMove(_ context.Context, b *board.Board, _ board.Cell) (int, error) {
	return randomLegal(b)
}

// SmartAgent takes an immediate win when available, otherwise blocks the
// opponent's immediate win, otherwise plays randomly.
type SmartAgent struct{}

func (a *SmartAgent) Name() string { return "smart" }

func (a *SmartAgent) SelectMove(_ context.Context, b *board.Board, symbol board.Cell) (int, error) {
	if col, ok := FindWinningMove(b, symbol); ok {
		return col, nil
	}
	if col, ok := FindWinningMove(b, board.Opponent(symbol)); ok {
		return col, nil
	}
	return randomLegal(b)
}

// MinimaxAgent searches with alpha-beta pruning to a fixed depth. Its stats
// accumulate across moves; the game runner resets them between games.
type MinimaxAgent struct {
	depth int
	stats alphabeta.SearchStats
}

func NewMinimaxAgent(depth int) *MinimaxAgent {
	return &MinimaxAgent{depth: depth}
}

func (a *MinimaxAgent) Name() string { return fmt.Sprintf("minimax-%d", a.depth) }

func (a *MinimaxAgent) Stats() *alphabeta.SearchStats { return &a.stats }

func (a *MinimaxAgent) SelectMove(ctx context.Context, b *board.Board, symbol board.Cell) (int, error) {
	return alphabeta.BestMove(ctx, b, symbol, a.depth, &a.stats)
}

// MLAgent asks a policy network for a column. A prediction that errors or
// names an illegal column falls back to a random legal move.
type MLAgent struct {
	suggester ml.Suggester
	features  []float32
}

func NewMLAgent(s ml.Suggester) *MLAgent {
	return &MLAgent{suggester: s}
}

func (a *MLAgent) Name() string { return "ml" }

func (a *MLAgent) SelectMove(_ context.Context, b *board.Board, _ board.Cell) (int, error) {
	a.features = b.FlattenInto(a.features)
	col, err := a.suggester.Predict(a.features)
	if err != nil {
		log.Debug().Err(err).Msg("ml-prediction-failed; falling back to random")
		return randomLegal(b)
	}
	if !b.IsValidMove(col) {
		log.Debug().Int("col", col).Msg("ml-suggested-illegal-move; falling back to random")
		return randomLegal(b)
	}
	return col, nil
}
