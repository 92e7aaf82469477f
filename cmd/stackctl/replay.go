package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"waitris/events"
	"waitris/network"
	"waitris/replay"
)

func newReplayCmd() *cobra.Command {
	var speed float64
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Feed a recorded session back into the running game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed <= 0 {
				return fmt.Errorf("speed must be positive, got %v", speed)
			}
			entries, err := replay.Load(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			for _, e := range entries {
				due := time.Duration(float64(e.OffsetMs)/speed) * time.Millisecond
				if wait := due - time.Since(start); wait > 0 {
					time.Sleep(wait)
				}
				ev, err := e.Event()
				if err != nil {
					continue
				}
				var line string
				if ev.Type == events.EventStart {
					line = network.FormatStart(ev.ID, ev.Command)
				} else {
					line = network.FormatEnd(ev.ID, ev.ExitCode)
				}
				if err := network.Notify(socketPath, line); err != nil {
					return fmt.Errorf("send event %d: %w", ev.ID, err)
				}
			}
			fmt.Printf("replayed %d events\n", len(entries))
			return nil
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Playback speed multiplier")
	return cmd
}
