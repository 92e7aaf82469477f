package commands

import (
	"strings"

	"waitris/constants"
)

// ToChunks converts a command line into fixed-length payload chunks.
// Each token is split into consecutive runs of ChunkSize runes; the
// final partial run of a token is right-padded with the filler glyph.
// A command that yields no chunks at all produces one all-filler chunk,
// so every command maps to at least one piece.
func ToChunks(cmd string) []string {
	var chunks []string
	for _, token := range Tokenize(cmd) {
		chunks = append(chunks, ChunkToken(token)...)
	}
	if len(chunks) == 0 {
		chunks = append(chunks, fillerChunk())
	}
	return chunks
}

// ChunkToken splits one token into ChunkSize-rune chunks, padding the
// last one with the filler glyph. An empty token yields one all-filler
// chunk.
func ChunkToken(token string) []string {
	runes := []rune(token)
	var res []string
	for len(runes) > 0 {
		take := len(runes)
		if take > constants.ChunkSize {
			take = constants.ChunkSize
		}
		chunk := make([]rune, constants.ChunkSize)
		copy(chunk, runes[:take])
		for i := take; i < constants.ChunkSize; i++ {
			chunk[i] = constants.FillerGlyph
		}
		res = append(res, string(chunk))
		runes = runes[take:]
	}
	if len(res) == 0 {
		res = append(res, fillerChunk())
	}
	return res
}

// ChunkPayload pads or truncates a chunk to exactly ChunkSize runes.
func ChunkPayload(chunk string) []rune {
	runes := []rune(chunk)
	payload := make([]rune, constants.ChunkSize)
	for i := range payload {
		if i < len(runes) {
			payload[i] = runes[i]
		} else {
			payload[i] = constants.FillerGlyph
		}
	}
	return payload
}

func fillerChunk() string {
	return strings.Repeat(string(constants.FillerGlyph), constants.ChunkSize)
}
