package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new - start a new game\n")
	io.WriteString(w, "play <col> - drop a disc for the player on turn (columns 0-6)\n")
	io.WriteString(w, "ai [depth] - let the engine move for the player on turn\n")
	io.WriteString(w, "suggest - ask the policy network for a column\n")
	io.WriteString(w, "trace [depth] - print the search decision tree\n")
	io.WriteString(w, "depth <n> - set the engine search depth\n")
	io.WriteString(w, "autoplay [agent1 agent2] [n] - play n agent-vs-agent games to the game log\n")
	io.WriteString(w, "analyze [path] - summarize a game log CSV\n")
	io.WriteString(w, "show (or s) - redraw the board\n")
	io.WriteString(w, "stats - show accumulated search statistics\n")
	io.WriteString(w, "history - show the columns played this game\n")
	io.WriteString(w, "exit (or bye) - leave the shell\n")
}
