package commands

import (
	"strings"
	"testing"

	"waitris/constants"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"Empty", "", nil},
		{"Whitespace only", "   \t ", nil},
		{"Single token", "ls", []string{"ls"}},
		{"Multiple tokens", "git commit -m msg", []string{"git", "commit", "-m", "msg"}},
		{"Quotes stripped", `echo "hello world"`, []string{"echo", "hello", "world"}},
		{"Single quotes stripped", "grep 'a b'", []string{"grep", "a", "b"}},
		{"Quotes inside token", `a"b`, []string{"ab"}},
		{"Leading and trailing space", "  ls -la  ", []string{"ls", "-la"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	if got := Identity("git status"); got != "git" {
		t.Errorf("Identity = %q, want %q", got, "git")
	}
	if got := Identity("   "); got != "" {
		t.Errorf("Identity of blank = %q, want empty", got)
	}
}

func TestChunkTokenLengths(t *testing.T) {
	// For a token of length L, ChunkToken produces ceil(L/8) chunks
	// (minimum 1), each exactly 8 runes.
	for l := 0; l <= 30; l++ {
		token := strings.Repeat("a", l)
		chunks := ChunkToken(token)

		want := (l + constants.ChunkSize - 1) / constants.ChunkSize
		if want == 0 {
			want = 1
		}
		if len(chunks) != want {
			t.Fatalf("len=%d: got %d chunks, want %d", l, len(chunks), want)
		}
		for i, c := range chunks {
			if n := len([]rune(c)); n != constants.ChunkSize {
				t.Errorf("len=%d chunk %d: %d runes, want %d", l, i, n, constants.ChunkSize)
			}
		}

		// The last chunk's trailing 8-(L mod 8) runes are filler.
		if l%constants.ChunkSize != 0 {
			last := []rune(chunks[len(chunks)-1])
			for i := l % constants.ChunkSize; i < constants.ChunkSize; i++ {
				if last[i] != constants.FillerGlyph {
					t.Errorf("len=%d: trailing rune %d = %q, want filler", l, i, last[i])
				}
			}
		}
	}
}

func TestToChunksEmptyCommand(t *testing.T) {
	filler := strings.Repeat(string(constants.FillerGlyph), constants.ChunkSize)
	for _, in := range []string{"", "   "} {
		chunks := ToChunks(in)
		if len(chunks) != 1 || chunks[0] != filler {
			t.Errorf("ToChunks(%q) = %v, want one all-filler chunk", in, chunks)
		}
	}
}

func TestToChunksPerToken(t *testing.T) {
	// Two tokens of 8 runes or fewer produce exactly two chunks.
	chunks := ToChunks("echo hi")
	if len(chunks) != 2 {
		t.Fatalf("ToChunks(\"echo hi\") = %d chunks, want 2", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "echo") || !strings.HasPrefix(chunks[1], "hi") {
		t.Errorf("unexpected chunk content: %v", chunks)
	}
}

func TestToChunksMultibyte(t *testing.T) {
	// Rune-based chunking: 10 multibyte runes split 8 + 2.
	chunks := ToChunks("éééééééééé")
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	second := []rune(chunks[1])
	if second[0] != 'é' || second[1] != 'é' || second[2] != constants.FillerGlyph {
		t.Errorf("second chunk = %q", chunks[1])
	}
}

func TestChunkPayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		len  int
	}{
		{"Exact", "abcdefgh", constants.ChunkSize},
		{"Short padded", "ab", constants.ChunkSize},
		{"Long truncated", "abcdefghijkl", constants.ChunkSize},
		{"Empty", "", constants.ChunkSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := ChunkPayload(tt.in)
			if len(payload) != tt.len {
				t.Fatalf("payload length %d, want %d", len(payload), tt.len)
			}
			in := []rune(tt.in)
			for i, r := range payload {
				if i < len(in) {
					if r != in[i] {
						t.Errorf("slot %d = %q, want %q", i, r, in[i])
					}
				} else if r != constants.FillerGlyph {
					t.Errorf("slot %d = %q, want filler", i, r)
				}
			}
		})
	}
}
