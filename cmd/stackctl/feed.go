package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"waitris/network"
)

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Send a single lifecycle event to the running game",
	}

	start := &cobra.Command{
		Use:   "start <id> <command...>",
		Short: "Announce a command starting",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			line := network.FormatStart(id, strings.Join(args[1:], " "))
			return network.Notify(socketPath, line)
		},
	}

	end := &cobra.Command{
		Use:   "end <id> [exit-code]",
		Short: "Announce a command finishing",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			exitCode := 0
			if len(args) == 2 {
				exitCode, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid exit code %q: %w", args[1], err)
				}
			}
			return network.Notify(socketPath, network.FormatEnd(id, exitCode))
		},
	}

	cmd.AddCommand(start, end)
	return cmd
}
