package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/fourup/fourup/game"
)

func TestPlayFullGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 1)
	r, err := NewGameRunner(logchan,
		AgentConfig{Kind: "smart"},
		AgentConfig{Kind: "random"})
	is.NoErr(err)

	is.NoErr(r.PlayFullGame(context.Background()))
	is.True(r.game.Result() != game.InProgress)

	line := <-logchan
	fields := strings.Split(strings.TrimSuffix(line, "\n"), ",")
	is.Equal(len(fields), 10)
	is.Equal(fields[0], "smart_vs_random")
	is.True(fields[1] == "smart" || fields[1] == "random" || fields[1] == "draw")
}

func TestPlayFullGameResetsBetweenGames(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 2)
	r, err := NewGameRunner(logchan,
		AgentConfig{Kind: "minimax", Depth: 1},
		AgentConfig{Kind: "random"})
	is.NoErr(err)

	is.NoErr(r.PlayFullGame(context.Background()))
	is.NoErr(r.PlayFullGame(context.Background()))

	// Heuristic deltas are per-game, so the second record reflects only the
	// second game's moves.
	<-logchan
	line := <-logchan
	fields := strings.Split(strings.TrimSuffix(line, "\n"), ",")
	is.Equal(fields[5], "1") // minimax_depth
}

func TestStartGamesAndAnalyze(t *testing.T) {
	is := is.New(t)
	logfile := filepath.Join(t.TempDir(), "games.csv")

	err := StartGames(context.Background(),
		AgentConfig{Kind: "minimax", Depth: 2},
		AgentConfig{Kind: "random"},
		4, 2, logfile)
	is.NoErr(err)

	data, err := os.ReadFile(logfile)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	is.Equal(len(lines), 5) // header plus one record per game
	is.True(strings.HasPrefix(lines[0], "matchup,winner,moves,win_type"))
	for _, line := range lines[1:] {
		is.True(strings.HasPrefix(line, "minimax-2_vs_random,"))
	}

	report, err := AnalyzeLogFile(logfile)
	is.NoErr(err)
	is.True(strings.Contains(report, "Games played: 4"))
	is.True(strings.Contains(report, "minimax-2 wins:"))
	is.True(strings.Contains(report, "random wins:"))
	is.True(strings.Contains(report, "Mean moves per game:"))
}

func TestAnalyzeMissingFile(t *testing.T) {
	is := is.New(t)
	_, err := AnalyzeLogFile("/nonexistent/games.csv")
	is.True(err != nil)
}
