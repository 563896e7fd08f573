// Package shell implements the interactive game console.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/fourup/fourup/alphabeta"
	"github.com/fourup/fourup/automatic"
	"github.com/fourup/fourup/config"
	"github.com/fourup/fourup/game"
	"github.com/fourup/fourup/ml"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game        *game.Game
	searchStats alphabeta.SearchStats
	suggester   ml.Suggester
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mfourup>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg, game: game.NewGame()}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) showGame() {
	sc.showMessage(sc.game.String())
}

func (sc *ShellController) playColumn(col int) error {
	mover := sc.game.PlayerOnTurn()
	if err := sc.game.PlayMove(col); err != nil {
		return err
	}
	log.Debug().Int("col", col).Str("symbol", mover.String()).Msg("played-move")
	return nil
}

func (sc *ShellController) playHuman(arg string) error {
	col, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("bad column %q", arg)
	}
	if err := sc.playColumn(col); err != nil {
		return err
	}
	sc.showGame()
	return nil
}

func (sc *ShellController) aiMove(arg string) error {
	if !sc.game.Playing() {
		return errors.New("the game is over; start a new one with `new`")
	}
	depth := sc.cfg.SearchDepth
	if arg != "" {
		d, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("bad depth %q", arg)
		}
		depth = d
	}
	col, err := alphabeta.BestMove(context.Background(), sc.game.Board(),
		sc.game.PlayerOnTurn(), depth, &sc.searchStats)
	if err != nil {
		return err
	}
	sc.showMessage(fmt.Sprintf("Engine plays column %d", col))
	if err := sc.playColumn(col); err != nil {
		return err
	}
	sc.showGame()
	return nil
}

func (sc *ShellController) suggest() error {
	if !sc.game.Playing() {
		return errors.New("the game is over; start a new one with `new`")
	}
	if sc.suggester == nil {
		model, err := ml.LoadModel(sc.cfg.MLModelPath)
		if err != nil {
			return err
		}
		sc.suggester = model
	}
	col, err := sc.suggester.Predict(sc.game.Board().FlattenInto(nil))
	if err != nil {
		return err
	}
	if !sc.game.Board().IsValidMove(col) {
		return fmt.Errorf("model suggested full or invalid column %d", col)
	}
	sc.showMessage(fmt.Sprintf("Model suggests column %d", col))
	return nil
}

func (sc *ShellController) trace(arg string) error {
	if !sc.game.Playing() {
		return errors.New("the game is over; start a new one with `new`")
	}
	depth := sc.cfg.SearchDepth
	if arg != "" {
		d, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("bad depth %q", arg)
		}
		depth = d
	}
	_, _, err := alphabeta.TraceSearch(context.Background(), sc.game.Board(),
		sc.game.PlayerOnTurn(), depth, sc.l.Stderr())
	return err
}

// autoplay accepts `autoplay [games]` or `autoplay <agent1> <agent2> [games]`.
func (sc *ShellController) autoplay(arg string) error {
	args, err := shellquote.Split(arg)
	if err != nil {
		return err
	}
	kind1, kind2 := "minimax", "random"
	games := sc.cfg.AutoplayGames

	switch len(args) {
	case 0:
	case 1:
		if games, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad game count %q", args[0])
		}
	case 3:
		if games, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("bad game count %q", args[2])
		}
		fallthrough
	case 2:
		kind1, kind2 = args[0], args[1]
	default:
		return errors.New("autoplay takes at most 3 arguments")
	}

	sc.showMessage(fmt.Sprintf("Playing %d %s vs %s games, logging to %s ...",
		games, kind1, kind2, sc.cfg.GameLogPath))
	err = automatic.StartGames(context.Background(),
		automatic.AgentConfig{Kind: kind1, Depth: sc.cfg.SearchDepth, ModelPath: sc.cfg.MLModelPath},
		automatic.AgentConfig{Kind: kind2, Depth: sc.cfg.SearchDepth, ModelPath: sc.cfg.MLModelPath},
		games, sc.cfg.AutoplayThreads, sc.cfg.GameLogPath)
	if err != nil {
		return err
	}
	sc.showMessage("Done. Analyze with `analyze`.")
	return nil
}

func (sc *ShellController) analyze(arg string) error {
	path := sc.cfg.GameLogPath
	if arg != "" {
		path = arg
	}
	report, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return err
	}
	sc.showMessage(report)
	return nil
}

func (sc *ShellController) statsReport() string {
	st := &sc.searchStats
	return fmt.Sprintf(
		"Nodes expanded: %d\nMax depth searched: %d\nAvg branching factor: %.3f\nAvg heuristic delta: %.3f",
		st.NodesExpanded, st.SearchDepthUsed,
		st.AvgBranchingFactor(), st.AvgHeuristicDelta())
}

func (sc *ShellController) newGame() {
	sc.game.Reset()
	sc.searchStats.Reset()
	sc.showGame()
}

func (sc *ShellController) commandSwitch(line string, sig chan os.Signal) error {
	arg := ""
	if fields := strings.SplitN(line, " ", 2); len(fields) == 2 {
		arg = strings.TrimSpace(fields[1])
	}

	switch {
	case line == "new":
		sc.newGame()
	case strings.HasPrefix(line, "play "):
		if err := sc.playHuman(arg); err != nil {
			sc.showError(err)
		}
	case line == "ai" || strings.HasPrefix(line, "ai "):
		if err := sc.aiMove(arg); err != nil {
			sc.showError(err)
		}
	case line == "suggest":
		if err := sc.suggest(); err != nil {
			sc.showError(err)
		}
	case line == "trace" || strings.HasPrefix(line, "trace "):
		if err := sc.trace(arg); err != nil {
			sc.showError(err)
		}
	case line == "autoplay" || strings.HasPrefix(line, "autoplay "):
		if err := sc.autoplay(arg); err != nil {
			sc.showError(err)
		}
	case line == "analyze" || strings.HasPrefix(line, "analyze "):
		if err := sc.analyze(arg); err != nil {
			sc.showError(err)
		}
	case strings.HasPrefix(line, "depth "):
		d, err := strconv.Atoi(arg)
		if err != nil || d < 1 {
			sc.showError(fmt.Errorf("bad depth %q", arg))
			break
		}
		sc.cfg.SearchDepth = d
		sc.showMessage(fmt.Sprintf("Search depth set to %d", d))
	case line == "show" || line == "s":
		sc.showGame()
	case line == "stats":
		sc.showMessage(sc.statsReport())
	case line == "history":
		sc.showMessage(fmt.Sprintf("%v", sc.game.History()))
	case line == "help":
		usage(sc.l.Stderr())
	case line == "bye" || line == "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	default:
		if strings.TrimSpace(line) != "" {
			log.Debug().Msgf("you said: %v", strconv.Quote(line))
			sc.showMessage("Unknown command; type `help`.")
		}
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showGame()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.commandSwitch(line, sig); err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
