// Package config loads the runtime configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"waitris/constants"
)

// Config holds everything tunable from outside the binary. Gameplay
// rules themselves are fixed; this only covers wiring and timing.
type Config struct {
	// SocketPath is where the command listener binds.
	SocketPath string `yaml:"socket_path"`

	// GravityMs is the wall-clock gravity cadence in milliseconds.
	GravityMs int `yaml:"gravity_ms"`

	// FrameMs is the render/input cadence in milliseconds.
	FrameMs int `yaml:"frame_ms"`

	// Audio enables the beep sound cues.
	Audio bool `yaml:"audio"`

	// ObserverAddr enables the read-only websocket broadcast when
	// non-empty, e.g. "127.0.0.1:7311".
	ObserverAddr string `yaml:"observer_addr"`

	// ReplayPath records the session's command events when non-empty.
	ReplayPath string `yaml:"replay_path"`

	// ScoresPath is the sqlite session-history database. Empty
	// disables score recording.
	ScoresPath string `yaml:"scores_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SocketPath: constants.DefaultSocketPath,
		GravityMs:  int(constants.GravityInterval / time.Millisecond),
		FrameMs:    int(constants.FrameInterval / time.Millisecond),
		Audio:      true,
		ScoresPath: defaultScoresPath(),
	}
}

// Load reads a yaml config file and fills unset fields from the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.SocketPath) == "" {
		c.SocketPath = constants.DefaultSocketPath
	}
	if c.GravityMs == 0 {
		c.GravityMs = int(constants.GravityInterval / time.Millisecond)
	}
	if c.FrameMs == 0 {
		c.FrameMs = int(constants.FrameInterval / time.Millisecond)
	}
}

func (c *Config) validate() error {
	if c.GravityMs < 0 {
		return fmt.Errorf("gravity_ms must be positive, got %d", c.GravityMs)
	}
	if c.FrameMs < 0 {
		return fmt.Errorf("frame_ms must be positive, got %d", c.FrameMs)
	}
	return nil
}

// Gravity returns the gravity cadence as a duration.
func (c Config) Gravity() time.Duration {
	return time.Duration(c.GravityMs) * time.Millisecond
}

// Frame returns the frame cadence as a duration.
func (c Config) Frame() time.Duration {
	return time.Duration(c.FrameMs) * time.Millisecond
}

func defaultScoresPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "waitris", "scores.db")
}
