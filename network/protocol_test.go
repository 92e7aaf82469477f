package network

import (
	"testing"

	"waitris/events"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want events.CommandEvent
	}{
		{
			"Start with command",
			"START 42 git status",
			true,
			events.CommandEvent{Type: events.EventStart, ID: 42, Command: "git status"},
		},
		{
			"Start with no command text",
			"START 7 ",
			true,
			events.CommandEvent{Type: events.EventStart, ID: 7, Command: ""},
		},
		{
			"End with exit code",
			"END 42 1",
			true,
			events.CommandEvent{Type: events.EventEnd, ID: 42, ExitCode: 1},
		},
		{
			"End without exit code defaults to zero",
			"END 42",
			true,
			events.CommandEvent{Type: events.EventEnd, ID: 42},
		},
		{
			"End with garbage exit code defaults to zero",
			"END 42 boom",
			true,
			events.CommandEvent{Type: events.EventEnd, ID: 42},
		},
		{
			"Surrounding whitespace tolerated",
			"  START 3 ls  ",
			true,
			events.CommandEvent{Type: events.EventStart, ID: 3, Command: "ls"},
		},
		{"Unknown prefix dropped", "PING 1", false, events.CommandEvent{}},
		{"Non-numeric id dropped", "START abc ls", false, events.CommandEvent{}},
		{"Negative id dropped", "END -1 0", false, events.CommandEvent{}},
		{"Empty line dropped", "", false, events.CommandEvent{}},
		{"Bare START dropped", "START", false, events.CommandEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	start, ok := ParseLine(FormatStart(9, "make test"))
	if !ok || start.ID != 9 || start.Command != "make test" {
		t.Errorf("start round trip = %+v ok=%v", start, ok)
	}
	end, ok := ParseLine(FormatEnd(9, 2))
	if !ok || end.ID != 9 || end.ExitCode != 2 {
		t.Errorf("end round trip = %+v ok=%v", end, ok)
	}
}
