// Package audio plays short generated cues for game events. Audio is
// best-effort: initialization failure leaves a silent manager and the
// game runs without sound.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker and mixes event cues.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a silent manager; call Initialize to start audio.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Initialize sets up the speaker. Safe to call once; errors are
// non-fatal for the caller.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences and releases the speaker.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	speaker.Close()
	m.initialized = false
}

// tone queues one fixed-length sine burst.
func (m *Manager) tone(freq float64, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	m.mixer.Add(beep.Take(sampleRate.N(d), sine))
}

// PlayLock marks a piece locking into the stack.
func (m *Manager) PlayLock() {
	m.tone(220, 40*time.Millisecond)
}

// PlayClear marks one or more lines clearing.
func (m *Manager) PlayClear() {
	m.tone(880, 120*time.Millisecond)
}

// PlayBomb marks a bomb detonation.
func (m *Manager) PlayBomb() {
	m.tone(110, 200*time.Millisecond)
}

// PlayReject marks a rejected move or rotation.
func (m *Manager) PlayReject() {
	m.tone(160, 30*time.Millisecond)
}

// PlayGameOver marks the terminal state.
func (m *Manager) PlayGameOver() {
	m.tone(98, 400*time.Millisecond)
}
