package network

import (
	"strconv"
	"strings"

	"waitris/events"
)

// ParseLine decodes one inbound protocol line:
//
//	START <id> <command text>
//	END <id> [exit_code]
//
// The id must parse as a non-negative integer. Malformed lines
// (unparseable id, unrecognized prefix) are silently dropped: the
// second return is false and no error surfaces to the core. A missing
// or unparseable exit code defaults to 0.
func ParseLine(line string) (events.CommandEvent, bool) {
	line = strings.TrimSpace(line)

	if rest, ok := strings.CutPrefix(line, "START "); ok {
		idStr, cmd, _ := strings.Cut(rest, " ")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return events.CommandEvent{}, false
		}
		return events.CommandEvent{
			Type:    events.EventStart,
			ID:      id,
			Command: strings.TrimSpace(cmd),
		}, true
	}

	if rest, ok := strings.CutPrefix(line, "END "); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return events.CommandEvent{}, false
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return events.CommandEvent{}, false
		}
		exitCode := 0
		if len(fields) > 1 {
			if code, err := strconv.Atoi(fields[1]); err == nil {
				exitCode = code
			}
		}
		return events.CommandEvent{
			Type:     events.EventEnd,
			ID:       id,
			ExitCode: exitCode,
		}, true
	}

	return events.CommandEvent{}, false
}

// FormatStart encodes a start notification line.
func FormatStart(id uint64, command string) string {
	return "START " + strconv.FormatUint(id, 10) + " " + command
}

// FormatEnd encodes an end notification line.
func FormatEnd(id uint64, exitCode int) string {
	return "END " + strconv.FormatUint(id, 10) + " " + strconv.Itoa(exitCode)
}
