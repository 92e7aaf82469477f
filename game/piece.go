package game

import (
	"math/rand"

	"waitris/constants"
)

// Shape enumerates the seven tetromino kinds.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
	ShapeCount
)

// shapeOffsets is the authoritative shape geometry: per shape, per
// rotation, four (dx, dy) cell offsets relative to the piece anchor
// inside a 4x4 reference frame. Hand-tuned tables, no wall kicks.
var shapeOffsets = [ShapeCount][4][4][2]int{
	ShapeI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	ShapeO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	ShapeT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	ShapeS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	ShapeZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	ShapeJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	ShapeL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// ShapeOffsets returns the four cell offsets for a shape under the
// given rotation (taken mod 4).
func ShapeOffsets(s Shape, rotation int) [4][2]int {
	return shapeOffsets[s][((rotation%4)+4)%4]
}

// RandomShape picks a uniformly random shape.
func RandomShape(rng *rand.Rand) Shape {
	return Shape(rng.Intn(int(ShapeCount)))
}

// Piece is a falling tetromino with a per-cell glyph payload. Piece is
// a value type: Rotated and Shifted return new values, which keeps
// speculative moves (collision probes, ghost projection) cheap.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
	Payload  []rune
}

// NewPiece creates a piece at the spawn anchor with the given payload.
func NewPiece(shape Shape, payload []rune) Piece {
	return Piece{Shape: shape, X: 3, Y: 0, Payload: payload}
}

// PieceCell is one occupied board position with its display glyph.
type PieceCell struct {
	X, Y  int
	Glyph rune
}

// PiecePairCell is one occupied board position with both glyphs of its
// two-character cell.
type PiecePairCell struct {
	X, Y        int
	Left, Right rune
}

// payloadGlyph resolves payload slot i with the defensive fallback
// chain: missing index falls back to the payload's last glyph, then to
// the fixed fallback. Enumeration therefore never fails regardless of
// payload length.
func payloadGlyph(payload []rune, i int, fallback rune) rune {
	if i < len(payload) {
		return payload[i]
	}
	if n := len(payload); n > 0 {
		return payload[n-1]
	}
	return fallback
}

// Cells enumerates the occupied cells with one glyph each, for
// collision and ghost paths.
func (p Piece) Cells() [4]PieceCell {
	offsets := ShapeOffsets(p.Shape, p.Rotation)
	var cells [4]PieceCell
	for i, off := range offsets {
		cells[i] = PieceCell{
			X:     p.X + off[0],
			Y:     p.Y + off[1],
			Glyph: payloadGlyph(p.Payload, i, '#'),
		}
	}
	return cells
}

// CellsWithPairs enumerates the occupied cells with two payload slots
// per cell (payload[2i], payload[2i+1]), for lock and render paths.
func (p Piece) CellsWithPairs() [4]PiecePairCell {
	offsets := ShapeOffsets(p.Shape, p.Rotation)
	var cells [4]PiecePairCell
	for i, off := range offsets {
		cells[i] = PiecePairCell{
			X:     p.X + off[0],
			Y:     p.Y + off[1],
			Left:  payloadGlyph(p.Payload, i*2, constants.FillerGlyph),
			Right: payloadGlyph(p.Payload, i*2+1, constants.FillerGlyph),
		}
	}
	return cells
}

// Rotated returns the piece advanced one rotation step.
func (p Piece) Rotated() Piece {
	next := p
	next.Rotation = (next.Rotation + 1) % 4
	return next
}

// Shifted returns the piece translated by (dx, dy).
func (p Piece) Shifted(dx, dy int) Piece {
	next := p
	next.X += dx
	next.Y += dy
	return next
}
