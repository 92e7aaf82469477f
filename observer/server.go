// Package observer exposes a read-only websocket broadcast of the
// game state for spectator tooling. It performs no gameplay mutation.
package observer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 5 * time.Second

	// Per-peer send buffer; a stalled spectator drops frames rather
	// than stalling the game loop.
	peerBuffer = 8
)

// Server accepts spectator connections and fans snapshots out to them.
type Server struct {
	addr string
	log  *log.Logger

	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu    sync.Mutex
	peers map[*peer]struct{}
}

type peer struct {
	out chan []byte
}

// NewServer creates a spectator server for addr.
func NewServer(addr string, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", s.handleWatch)
	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}

	ln, err := listen(s.addr)
	if err != nil {
		return err
	}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Printf("observer: serve: %v", err)
		}
	}()
	return nil
}

// Stop shuts the server down and disconnects all spectators.
func (s *Server) Stop() {
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(ctx)
	}
	s.mu.Lock()
	for p := range s.peers {
		close(p.out)
		delete(s.peers, p)
	}
	s.mu.Unlock()
}

// Publish encodes and broadcasts a snapshot. Never blocks: peers with
// full buffers skip this frame.
func (s *Server) Publish(snap Snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.peers {
		select {
		case p.out <- b:
		default:
		}
	}
}

// PeerCount returns the number of connected spectators.
func (s *Server) PeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

func listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

func (s *Server) handleWatch(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	p := &peer{out: make(chan []byte, peerBuffer)}
	s.mu.Lock()
	s.peers[p] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.peers, p)
		s.mu.Unlock()
	}()

	// Spectators only receive; drain and discard anything they send so
	// pings keep the connection alive.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for b := range p.out {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}
