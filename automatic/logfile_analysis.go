package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/fourup/fourup/stats"
)

// AnalyzeLogFile reads a match CSV produced by StartGames and returns a
// human-readable statistics report.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// matchup,winner,moves,win_type,minimax_nodes,minimax_depth,
	// avg_time_agent1,avg_time_agent2,avg_branching_factor,avg_heuristic_delta

	movesStat := &stats.Statistic{}
	nodesStat := &stats.Statistic{}
	time1Stat := &stats.Statistic{}
	time2Stat := &stats.Statistic{}
	branchingStat := &stats.Statistic{}
	deltaStat := &stats.Statistic{}

	var agent1, agent2 string
	var branchingVals []float64
	wins := map[string]int{}
	gamesPlayed := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "matchup" {
			// header line
			continue
		}
		if agent1 == "" {
			parts := strings.Split(record[0], "_vs_")
			if len(parts) == 2 {
				agent1, agent2 = parts[0], parts[1]
			}
		}
		moves, err := strconv.Atoi(record[2])
		if err != nil {
			return "", err
		}
		nodes, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		time1, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return "", err
		}
		time2, err := strconv.ParseFloat(record[7], 64)
		if err != nil {
			return "", err
		}
		branching, err := strconv.ParseFloat(record[8], 64)
		if err != nil {
			return "", err
		}
		delta, err := strconv.ParseFloat(record[9], 64)
		if err != nil {
			return "", err
		}

		wins[record[1]]++
		movesStat.Push(float64(moves))
		nodesStat.Push(float64(nodes))
		time1Stat.Push(time1)
		time2Stat.Push(time2)
		branchingStat.Push(branching)
		deltaStat.Push(delta)
		if branching > 0 {
			branchingVals = append(branchingVals, branching)
		}
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "", fmt.Errorf("no games found in %s", filepath)
	}

	pct := func(n int) float64 { return 100.0 * float64(n) / float64(gamesPlayed) }
	winRate := float64(wins[agent1]) / float64(gamesPlayed)
	ciHalf := stats.ZVal(95) * math.Sqrt(winRate*(1-winRate)/float64(gamesPlayed))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", gamesPlayed)
	fmt.Fprintf(&sb, "%v wins: %d (%.3f%%)\n", agent1, wins[agent1], pct(wins[agent1]))
	fmt.Fprintf(&sb, "%v wins: %d (%.3f%%)\n", agent2, wins[agent2], pct(wins[agent2]))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", wins["draw"], pct(wins["draw"]))
	fmt.Fprintf(&sb, "%v win rate 95%% CI: %.3f%% ± %.3f%%\n",
		agent1, 100*winRate, 100*ciHalf)
	fmt.Fprintf(&sb, "Mean moves per game: %.3f  Stdev: %.3f\n",
		movesStat.Mean(), movesStat.Stdev())
	if nodesStat.Max() > 0 {
		fmt.Fprintf(&sb, "Mean nodes searched per game: %.1f  Stdev: %.1f\n",
			nodesStat.Mean(), nodesStat.Stdev())
		fmt.Fprintf(&sb, "Mean branching factor: %.3f\n", branchingStat.Mean())
		fmt.Fprintf(&sb, "Mean heuristic delta: %.3f\n", deltaStat.Mean())
	}
	fmt.Fprintf(&sb, "%v mean move time: %.6fs\n", agent1, time1Stat.Mean())
	fmt.Fprintf(&sb, "%v mean move time: %.6fs\n", agent2, time2Stat.Mean())

	if len(branchingVals) > 1 && lo.Max(branchingVals) > lo.Min(branchingVals) {
		sb.WriteString("\nBranching factor distribution:\n")
		hist := histogram.Hist(7, branchingVals)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}
