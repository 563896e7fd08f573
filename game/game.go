// Package game tracks a single play session: the board, whose turn it is,
// the move history, and how the game ended.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fourup/fourup/board"
)

// Result is the state of a game.
type Result uint8

const (
	InProgress Result = iota
	Player1Won
	Player2Won
	Draw
)

func (r Result) String() string {
	switch r {
	case InProgress:
		return "in progress"
	case Player1Won:
		return "player 1 won"
	case Player2Won:
		return "player 2 won"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// ErrGameOver is returned when a move is played on a finished game.
var ErrGameOver = errors.New("game is over")

// Game is a single session. Player1 always moves first.
type Game struct {
	board   *board.Board
	onturn  board.Cell
	turns   int
	result  Result
	winKind board.WinKind
	history []int
}

func NewGame() *Game {
	return &Game{
		board:  board.NewBoard(),
		onturn: board.Player1,
	}
}

// Board returns the live board. Mutating it directly bypasses the game's
// bookkeeping; search engines copying it is fine.
func (g *Game) Board() *board.Board { return g.board }

func (g *Game) PlayerOnTurn() board.Cell { return g.onturn }

func (g *Game) Turns() int { return g.turns }

func (g *Game) Result() Result { return g.result }

// WinKind reports how the game was won. Only meaningful when Result is
// Player1Won or Player2Won.
func (g *Game) WinKind() board.WinKind { return g.winKind }

// History returns a copy of the columns played so far, in order.
func (g *Game) History() []int {
	h := make([]int, len(g.history))
	copy(h, g.history)
	return h
}

func (g *Game) Playing() bool { return g.result == InProgress }

// PlayMove drops the on-turn player's disc in col, records it, updates the
// result, and passes the turn.
func (g *Game) PlayMove(col int) error {
	if !g.Playing() {
		return ErrGameOver
	}
	if _, err := g.board.PlaceDisc(col, g.onturn); err != nil {
		return err
	}
	g.history = append(g.history, col)
	g.turns++

	if kind, won := g.board.CheckWinner(g.onturn); won {
		g.winKind = kind
		if g.onturn == board.Player1 {
			g.result = Player1Won
		} else {
			g.result = Player2Won
		}
		log.Debug().Int("turns", g.turns).Str("winner", g.onturn.String()).
			Str("win-type", kind.String()).Msg("game-ended")
		return nil
	}
	if g.board.IsFull() {
		g.result = Draw
		log.Debug().Int("turns", g.turns).Msg("game-ended-in-draw")
		return nil
	}
	g.onturn = board.Opponent(g.onturn)
	return nil
}

// Reset starts a fresh game on a new board.
func (g *Game) Reset() {
	g.board = board.NewBoard()
	g.onturn = board.Player1
	g.turns = 0
	g.result = InProgress
	g.winKind = 0
	g.history = g.history[:0]
}

func (g *Game) String() string {
	status := g.result.String()
	if g.Playing() {
		status = fmt.Sprintf("%s to move", g.onturn)
	}
	return g.board.String() + status + "\n"
}
