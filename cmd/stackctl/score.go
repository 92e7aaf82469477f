package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"waitris/config"
	"waitris/scores"
)

func newScoresCmd() *cobra.Command {
	var dbPath string
	var limit int
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the best recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = config.Default().ScoresPath
			}
			store, err := scores.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.Top(limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("no sessions recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCORE\tLINES\tCOMMANDS\tDURATION\tWHEN")
			for _, s := range sessions {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n",
					s.Score, s.Lines, s.Commands,
					s.Ended.Sub(s.Started).Round(time.Second),
					s.Ended.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Scores database path (defaults to the game's)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of sessions to show")
	return cmd
}
