// autoplay runs a batch of agent-vs-agent games and writes one CSV record
// per game, then prints a summary report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fourup/fourup/automatic"
	"github.com/fourup/fourup/config"
)

var (
	agent1     = flag.String("agent1", "minimax", "first agent: random, smart, minimax, or ml")
	agent2     = flag.String("agent2", "random", "second agent: random, smart, minimax, or ml")
	games      = flag.Int("games", 0, "number of games to play (0 = config default)")
	threads    = flag.Int("threads", 0, "worker goroutines (0 = config default)")
	depth      = flag.Int("depth", 0, "minimax search depth (0 = config default)")
	outPath    = flag.String("out", "", "output CSV path (empty = config default)")
	configPath = flag.String("config", "", "path to a YAML config file")
)

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if *games == 0 {
		*games = cfg.AutoplayGames
	}
	if *threads == 0 {
		*threads = cfg.AutoplayThreads
	}
	if *depth == 0 {
		*depth = cfg.SearchDepth
	}
	if *outPath == "" {
		*outPath = cfg.GameLogPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	cfg1 := automatic.AgentConfig{Kind: *agent1, Depth: *depth, ModelPath: cfg.MLModelPath}
	cfg2 := automatic.AgentConfig{Kind: *agent2, Depth: *depth, ModelPath: cfg.MLModelPath}

	start := time.Now()
	if err := automatic.StartGames(ctx, cfg1, cfg2, *games, *threads, *outPath); err != nil {
		log.Fatal().Err(err).Msg("autoplay failed")
	}
	log.Info().Float64("elapsed-sec", time.Since(start).Seconds()).Msg("matchup done")

	report, err := automatic.AnalyzeLogFile(*outPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not analyze log file")
	}
	fmt.Println(report)
}
