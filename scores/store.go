// Package scores keeps a history of finished sessions in sqlite. Only
// end-of-game statistics are stored; live game state never touches
// disk.
package scores

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Session is one finished game's statistics.
type Session struct {
	ID       string
	Started  time.Time
	Ended    time.Time
	Score    uint64
	Lines    uint64
	Commands int
	GameOver bool
}

// Store wraps the sqlite session-history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER NOT NULL,
	score      INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	commands   INTEGER NOT NULL,
	game_over  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_score ON sessions(score DESC);
`

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("scores schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one finished session. A missing ID is generated.
func (s *Store) Record(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = newSessionID(sess.Ended)
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, started_at, ended_at, score, lines, commands, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Started.Unix(),
		sess.Ended.Unix(),
		int64(sess.Score),
		int64(sess.Lines),
		sess.Commands,
		boolToInt(sess.GameOver),
	)
	if err != nil {
		return "", fmt.Errorf("record session: %w", err)
	}
	return sess.ID, nil
}

// Top returns the n highest-scoring sessions, best first.
func (s *Store) Top(n int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, score, lines, commands, game_over
		 FROM sessions ORDER BY score DESC, ended_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started, ended, score, lines int64
		var gameOver int
		if err := rows.Scan(&sess.ID, &started, &ended, &score, &lines, &sess.Commands, &gameOver); err != nil {
			return nil, err
		}
		sess.Started = time.Unix(started, 0)
		sess.Ended = time.Unix(ended, 0)
		sess.Score = uint64(score)
		sess.Lines = uint64(lines)
		sess.GameOver = gameOver != 0
		out = append(out, sess)
	}
	return out, rows.Err()
}

func newSessionID(at time.Time) string {
	if at.IsZero() {
		at = time.Now()
	}
	entropy := rand.New(rand.NewSource(at.UnixNano()))
	return ulid.MustNew(ulid.Timestamp(at), entropy).String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
