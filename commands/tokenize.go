package commands

import "unicode"

// Tokenize splits a command line into whitespace-delimited tokens.
// Quote characters are stripped entirely, they are not token content.
// Empty or whitespace-only input yields no tokens.
func Tokenize(cmd string) []string {
	var tokens []string
	var buf []rune
	for _, ch := range cmd {
		if ch == '"' || ch == '\'' {
			continue
		}
		if unicode.IsSpace(ch) {
			if len(buf) > 0 {
				tokens = append(tokens, string(buf))
				buf = buf[:0]
			}
			continue
		}
		buf = append(buf, ch)
	}
	if len(buf) > 0 {
		tokens = append(tokens, string(buf))
	}
	return tokens
}

// Identity returns the first token of a command line, or "" if there
// is none. Used for repeat-detection in the variety economy.
func Identity(cmd string) string {
	tokens := Tokenize(cmd)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
