// Package main provides stackctl, the companion tool for the game:
// it launches the tmux side pane, feeds command lifecycle events into
// the running game's socket, emits shell hooks, and replays recorded
// sessions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"waitris/constants"
)

var socketPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "stackctl",
		Short: "Companion tool for the waitris command stack game",
		Long: `stackctl drives a running waitris game from the outside.

Use 'stackctl play' to launch the game in a tmux side pane.
Use 'stackctl hook bash' in your shell rc to feed every command you run.
Use 'stackctl feed' to send individual START/END events by hand.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket",
		constants.DefaultSocketPath, "Unix socket of the running game")

	rootCmd.AddCommand(
		newPlayCmd(),
		newFeedCmd(),
		newHookCmd(),
		newReplayCmd(),
		newScoresCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "stackctl: %v\n", err)
		os.Exit(1)
	}
}
