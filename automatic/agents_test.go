package automatic

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/fourup/fourup/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestFindWinningMove(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	for col := 0; col < 3; col++ {
		b.PlaceDisc(col, board.Player1)
	}
	before := b.Copy()

	col, ok := FindWinningMove(b, board.Player1)
	is.True(ok)
	is.Equal(col, 3)
	is.True(b.Equals(before)) // probing must not leave discs behind

	_, ok = FindWinningMove(b, board.Player2)
	is.True(!ok)

	_, ok = FindWinningMove(board.NewBoard(), board.Player1)
	is.True(!ok)
}

func TestRandomAgentPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	a := &RandomAgent{}
	b := board.NewBoard()
	for i := 0; i < 20; i++ {
		col, err := a.SelectMove(context.Background(), b, board.Player1)
		is.NoErr(err)
		is.True(b.IsValidMove(col))
	}
}

func TestSmartAgentTakesWin(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	for col := 0; col < 3; col++ {
		b.PlaceDisc(col, board.Player1)
	}
	a := &SmartAgent{}
	col, err := a.SelectMove(context.Background(), b, board.Player1)
	is.NoErr(err)
	is.Equal(col, 3)
}

func TestSmartAgentBlocksLoss(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	for col := 2; col < 5; col++ {
		b.PlaceDisc(col, board.Player2)
	}
	a := &SmartAgent{}
	// Player2 threatens at both 1 and 5; the block must hit one of them.
	col, err := a.SelectMove(context.Background(), b, board.Player1)
	is.NoErr(err)
	is.True(col == 1 || col == 5)
}

func TestMinimaxAgentAccumulatesStats(t *testing.T) {
	is := is.New(t)
	a := NewMinimaxAgent(2)
	b := board.NewBoard()
	for i := 0; i < 2; i++ {
		col, err := a.SelectMove(context.Background(), b, board.Player1)
		is.NoErr(err)
		is.True(b.IsValidMove(col))
	}
	is.Equal(len(a.Stats().HeuristicDeltas), 2)
	is.True(a.Stats().NodesExpanded > 0)
}

type stubSuggester struct {
	col int
	err error
}

func (s stubSuggester) Predict([]float32) (int, error) { return s.col, s.err }

func TestMLAgentUsesPrediction(t *testing.T) {
	is := is.New(t)
	a := NewMLAgent(stubSuggester{col: 4})
	col, err := a.SelectMove(context.Background(), board.NewBoard(), board.Player1)
	is.NoErr(err)
	is.Equal(col, 4)
}

func TestMLAgentFallsBackOnError(t *testing.T) {
	is := is.New(t)
	a := NewMLAgent(stubSuggester{err: errors.New("inference failed")})
	b := board.NewBoard()
	col, err := a.SelectMove(context.Background(), b, board.Player1)
	is.NoErr(err)
	is.True(b.IsValidMove(col))
}

func TestMLAgentFallsBackOnIllegalSuggestion(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	for i := 0; i < board.Rows; i++ {
		b.PlaceDisc(0, board.Player1)
	}
	a := NewMLAgent(stubSuggester{col: 0})
	col, err := a.SelectMove(context.Background(), b, board.Player2)
	is.NoErr(err)
	is.True(col != 0)
	is.True(b.IsValidMove(col))
}

func TestNewAgentUnknownKind(t *testing.T) {
	is := is.New(t)
	_, err := newAgent(AgentConfig{Kind: "psychic"})
	is.True(err != nil)
}
