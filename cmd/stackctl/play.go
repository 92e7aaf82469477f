package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var paneWidth int
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Launch the game in a tmux side pane next to your shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env := os.Getenv("STACK_PANE_W"); env != "" {
				if w, err := strconv.Atoi(env); err == nil && w > 0 {
					paneWidth = w
				}
			}
			if !tmuxAvailable() {
				return fmt.Errorf("tmux not found on PATH")
			}
			gameCmd := gameBinaryPath()
			if os.Getenv("TMUX") != "" {
				return runInsideTmux(paneWidth, gameCmd)
			}
			return runNewTmuxSession(paneWidth, gameCmd)
		},
	}
	cmd.Flags().IntVar(&paneWidth, "width", 24, "Target width of the game pane in columns")
	return cmd
}

func tmuxAvailable() bool {
	return exec.Command("tmux", "-V").Run() == nil
}

// runInsideTmux splits the current window, puts the game on the right
// and hands focus back to the shell on the left.
func runInsideTmux(paneWidth int, gameCmd string) error {
	pct := percentForWidth(paneWidth)
	if err := exec.Command("tmux",
		"split-window", "-h", "-p", pct,
		"env", "STACK_MANAGED=1", "STACK_KILL_SESSION=0", gameCmd,
	).Run(); err != nil {
		return fmt.Errorf("tmux split failed: %w", err)
	}
	_ = exec.Command("tmux", "select-pane", "-L").Run()
	return nil
}

// runNewTmuxSession starts a fresh session holding the user's shell
// plus the game pane, then attaches to it.
func runNewTmuxSession(paneWidth int, gameCmd string) error {
	pct := percentForWidth(paneWidth)
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "bash"
	}
	if err := exec.Command("tmux", "new-session", "-d", shell).Run(); err != nil {
		return fmt.Errorf("tmux new-session failed: %w", err)
	}
	if err := exec.Command("tmux",
		"split-window", "-h", "-p", pct,
		"env", "STACK_MANAGED=1", "STACK_KILL_SESSION=1", gameCmd,
	).Run(); err != nil {
		return fmt.Errorf("tmux split failed: %w", err)
	}
	_ = exec.Command("tmux", "select-pane", "-L").Run()
	if err := exec.Command("tmux", "attach-session").Run(); err != nil {
		return fmt.Errorf("tmux attach failed: %w", err)
	}
	return nil
}

// percentForWidth maps a target column count to the percentage tmux
// split-window -p expects. Rough heuristic against a 120-col terminal.
func percentForWidth(target int) string {
	pct := float64(target) / 120.0 * 100.0
	if pct < 10 {
		pct = 10
	}
	if pct > 90 {
		pct = 90
	}
	return strconv.Itoa(int(pct + 0.5))
}

// gameBinaryPath prefers a waitris binary next to stackctl, falling
// back to PATH lookup.
func gameBinaryPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "waitris"
	}
	sibling := filepath.Join(filepath.Dir(exe), "waitris")
	if _, err := os.Stat(sibling); err == nil {
		return sibling
	}
	return "waitris"
}
