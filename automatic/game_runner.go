// Package automatic plays agent-vs-agent matches and collects per-game
// metrics for offline analysis.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fourup/fourup/alphabeta"
	"github.com/fourup/fourup/board"
	"github.com/fourup/fourup/game"
	"github.com/fourup/fourup/ml"
	"github.com/fourup/fourup/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

const csvHeader = "matchup,winner,moves,win_type,minimax_nodes,minimax_depth," +
	"avg_time_agent1,avg_time_agent2,avg_branching_factor,avg_heuristic_delta\n"

// AgentConfig names an agent to construct. Kind is one of "random", "smart",
// "minimax", or "ml".
type AgentConfig struct {
	Kind      string
	Depth     int
	ModelPath string
}

func newAgent(cfg AgentConfig) (Agent, error) {
	switch cfg.Kind {
	case "random":
		return &RandomAgent{}, nil
	case "smart":
		return &SmartAgent{}, nil
	case "minimax":
		return NewMinimaxAgent(cfg.Depth), nil
	case "ml":
		model, err := ml.LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		return NewMLAgent(model), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
}

// GameRunner plays full games between two agents on a single goroutine.
// Agent 1 is always Player1 and moves first.
type GameRunner struct {
	game    *game.Game
	agents  [2]Agent
	logchan chan string
}

// NewGameRunner builds a runner and its two agents.
func NewGameRunner(logchan chan string, cfg1, cfg2 AgentConfig) (*GameRunner, error) {
	a1, err := newAgent(cfg1)
	if err != nil {
		return nil, err
	}
	a2, err := newAgent(cfg2)
	if err != nil {
		return nil, err
	}
	return &GameRunner{
		game:    game.NewGame(),
		agents:  [2]Agent{a1, a2},
		logchan: logchan,
	}, nil
}

// PlayFullGame plays one game to completion and emits a CSV record.
func (r *GameRunner) PlayFullGame(ctx context.Context) error {
	r.game.Reset()
	for _, a := range r.agents {
		if m, ok := a.(*MinimaxAgent); ok {
			m.Stats().Reset()
		}
	}

	var moveTimes [2]stats.Statistic
	for r.game.Playing() {
		idx := 0
		if r.game.PlayerOnTurn() == board.Player2 {
			idx = 1
		}
		start := time.Now()
		col, err := r.agents[idx].SelectMove(ctx, r.game.Board(), r.game.PlayerOnTurn())
		if err != nil {
			return err
		}
		moveTimes[idx].Push(time.Since(start).Seconds())
		if err := r.game.PlayMove(col); err != nil {
			return err
		}
	}

	if r.logchan != nil {
		r.logchan <- r.csvLine(&moveTimes)
	}
	return nil
}

func (r *GameRunner) winnerName() string {
	switch r.game.Result() {
	case game.Player1Won:
		return r.agents[0].Name()
	case game.Player2Won:
		return r.agents[1].Name()
	}
	return "draw"
}

func (r *GameRunner) csvLine(moveTimes *[2]stats.Statistic) string {
	winType := ""
	if r.game.Result() == game.Player1Won || r.game.Result() == game.Player2Won {
		winType = r.game.WinKind().String()
	}

	var searchStats *alphabeta.SearchStats
	for _, a := range r.agents {
		if m, ok := a.(*MinimaxAgent); ok {
			searchStats = m.Stats()
			break
		}
	}
	nodes, depth := 0, 0
	branching, delta := 0.0, 0.0
	if searchStats != nil {
		nodes = searchStats.NodesExpanded
		depth = searchStats.SearchDepthUsed
		branching = searchStats.AvgBranchingFactor()
		delta = searchStats.AvgHeuristicDelta()
	}

	return fmt.Sprintf("%s_vs_%s,%s,%d,%s,%d,%d,%.6f,%.6f,%.3f,%.3f\n",
		r.agents[0].Name(), r.agents[1].Name(),
		r.winnerName(),
		r.game.Turns(),
		winType,
		nodes, depth,
		moveTimes[0].Mean(), moveTimes[1].Mean(),
		branching, delta)
}

// StartGames plays numGames independent games between the two configured
// agents across threads workers, writing one CSV record per game to
// outputFilename. It blocks until all games finish or ctx is cancelled.
func StartGames(ctx context.Context, cfg1, cfg2 AgentConfig, numGames, threads int, outputFilename string) error {
	if IsPlaying.Value() > 0 {
		return errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).
		Uint64("total-memory-bytes", memory.TotalMemory()).Msg("starting-games")

	GamesPlayed.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			runner, err := NewGameRunner(logChan, cfg1, cfg2)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				if err := runner.PlayFullGame(gctx); err != nil {
					return err
				}
				GamesPlayed.Add(1)
			}
			return nil
		})
	}

	go func() {
	feedLoop:
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, no longer queueing games")
				break feedLoop
			}
		}
		close(jobs)
	}()

	writerDone := make(chan error, 1)
	go func() {
		_, werr := logfile.WriteString(csvHeader)
		for msg := range logChan {
			if werr == nil {
				_, werr = logfile.WriteString(msg)
			}
		}
		cerr := logfile.Close()
		if werr == nil {
			werr = cerr
		}
		writerDone <- werr
	}()

	err = g.Wait()
	close(logChan)
	if werr := <-writerDone; err == nil {
		err = werr
	}
	log.Info().Int64("games-played", GamesPlayed.Value()).Msg("all games finished")
	return err
}
