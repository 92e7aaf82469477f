package network

import (
	"bufio"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"waitris/events"
)

// Listener accepts connections on a unix socket and pushes parsed
// command events into the queue. It is the only producer boundary
// between external command delivery and the game loop.
type Listener struct {
	path  string
	queue *events.Queue

	ln      net.Listener
	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewListener creates a listener for the given socket path.
func NewListener(path string, queue *events.Queue) *Listener {
	return &Listener{
		path:   path,
		queue:  queue,
		stopCh: make(chan struct{}),
	}
}

// Start binds the socket (replacing any stale file) and begins
// accepting in the background.
func (l *Listener) Start() error {
	if !l.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	_ = os.Remove(l.path)
	ln, err := net.Listen("unix", l.path)
	if err != nil {
		l.running.Store(false)
		return err
	}
	l.ln = ln

	l.wg.Add(1)
	go l.acceptLoop()

	return nil
}

// Stop closes the socket and waits for the accept loop to exit.
func (l *Listener) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.stopCh)
	if l.ln != nil {
		_ = l.ln.Close()
	}
	l.wg.Wait()
	_ = os.Remove(l.path)
}

func (l *Listener) acceptLoop() {
	defer l.wg.Done()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.stopCh:
				return
			default:
				continue
			}
		}
		l.wg.Add(1)
		go l.handleConn(conn)
	}
}

// handleConn reads protocol lines until EOF. Malformed lines are
// dropped without feedback to the sender.
func (l *Listener) handleConn(conn net.Conn) {
	defer l.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if ev, ok := ParseLine(scanner.Text()); ok {
			l.queue.Push(ev)
		}
	}
}
