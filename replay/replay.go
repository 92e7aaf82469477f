// Package replay records the command-event stream of one session to a
// zstd-compressed JSON-lines file, so a run of play can be re-fed into
// the game later.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"waitris/events"
)

// Entry is one recorded command event with its arrival offset from the
// start of the session.
type Entry struct {
	OffsetMs int64  `json:"offset_ms"`
	Type     string `json:"type"`
	ID       uint64 `json:"id"`
	Command  string `json:"command,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

const (
	typeStart = "start"
	typeEnd   = "end"
)

// Recorder appends command events to a compressed log file.
type Recorder struct {
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
	began time.Time
}

// NewRecorder creates (truncating) the log file at path.
func NewRecorder(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Recorder{
		f:     f,
		enc:   enc,
		w:     bufio.NewWriter(enc),
		began: time.Now(),
	}, nil
}

// Record appends one event with the current session offset.
func (r *Recorder) Record(ev events.CommandEvent) error {
	entry := Entry{
		OffsetMs: time.Since(r.began).Milliseconds(),
		ID:       ev.ID,
	}
	switch ev.Type {
	case events.EventStart:
		entry.Type = typeStart
		entry.Command = ev.Command
	case events.EventEnd:
		entry.Type = typeEnd
		entry.ExitCode = ev.ExitCode
	default:
		return fmt.Errorf("unknown event type %d", ev.Type)
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = r.w.Write(b)
	return err
}

// Close flushes and finalizes the log.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil {
		r.enc.Close()
		r.f.Close()
		return err
	}
	if err := r.enc.Close(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}

// Load reads every entry of a recorded session in order.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Entry
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("replay %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Event converts an entry back into the command event it recorded.
func (e Entry) Event() (events.CommandEvent, error) {
	switch e.Type {
	case typeStart:
		return events.CommandEvent{Type: events.EventStart, ID: e.ID, Command: e.Command}, nil
	case typeEnd:
		return events.CommandEvent{Type: events.EventEnd, ID: e.ID, ExitCode: e.ExitCode}, nil
	default:
		return events.CommandEvent{}, fmt.Errorf("unknown entry type %q", e.Type)
	}
}
