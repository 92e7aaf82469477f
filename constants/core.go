package constants

import "time"

// Main Loop Timing
const (
	// FrameInterval is the render/input cadence of the main loop
	FrameInterval = 50 * time.Millisecond

	// GravityInterval is the wall-clock cadence of gravity ticks
	GravityInterval = 450 * time.Millisecond

	// StatusBlinkInterval drives the ACTIVE status blink in the sidebar
	StatusBlinkInterval = 300 * time.Millisecond

	// ObserverPublishFrames is how many frames pass between snapshots
	ObserverPublishFrames = 2
)

// Event Queue
const (
	// EventQueueSize is the command event ring capacity (power of two)
	EventQueueSize = 256

	// EventBufferMask converts a sequence number into a ring index
	EventBufferMask = EventQueueSize - 1
)

// Protocol Defaults
const (
	// DefaultSocketPath is where the command listener binds
	DefaultSocketPath = "/tmp/waitris.sock"
)
