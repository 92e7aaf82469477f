package events

// EventType distinguishes command lifecycle notifications.
type EventType int

const (
	// EventStart announces a command beginning execution
	// Producer: socket listener | Payload: ID + Command text
	EventStart EventType = iota

	// EventEnd announces a command finishing
	// Producer: socket listener | Payload: ID + ExitCode
	EventEnd
)

// CommandEvent is one externally observed command lifecycle change.
// The ID is opaque and assumed unique while the command is live.
type CommandEvent struct {
	Type     EventType
	ID       uint64
	Command  string
	ExitCode int
}
