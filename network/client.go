package network

import (
	"fmt"
	"net"
	"time"
)

const notifyTimeout = 2 * time.Second

// Notify dials the game socket and writes one protocol line. Used by
// the feeder CLI and shell hooks; a missing socket (game not running)
// is reported as an error for the caller to ignore or surface.
func Notify(socketPath, line string) error {
	conn, err := net.DialTimeout("unix", socketPath, notifyTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", socketPath, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(notifyTimeout))
	if _, err := fmt.Fprintln(conn, line); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
