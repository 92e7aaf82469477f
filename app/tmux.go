package app

import (
	"os"
	"os/exec"
	"strings"
)

// cleanupTmux tears down the pane or session the launcher created for
// us. Outside a managed tmux pane this is a no-op.
func cleanupTmux() {
	managed := os.Getenv("STACK_MANAGED") == "1"
	killSession := os.Getenv("STACK_KILL_SESSION") == "1"
	if !managed || os.Getenv("TMUX") == "" {
		return
	}

	if killSession {
		if session, err := tmuxCurrentSession(); err == nil {
			_ = exec.Command("tmux", "kill-session", "-t", session).Run()
		}
		return
	}
	_ = exec.Command("tmux", "kill-pane").Run()
}

func tmuxCurrentSession() (string, error) {
	out, err := exec.Command("tmux", "display-message", "-p", "#S").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
