package game

// Cell is one board position: empty, or filled with a two-glyph pair.
type Cell struct {
	Left   rune
	Right  rune
	Filled bool
}

// Filled constructs a filled cell from a glyph pair.
func FilledCell(left, right rune) Cell {
	return Cell{Left: left, Right: right, Filled: true}
}

// Board is a fixed-size row-major grid of cells. It is a pure data
// container owned by Game; bounds are the caller's contract and
// out-of-range access panics.
type Board struct {
	Width  int
	Height int
	cells  []Cell
}

// NewBoard creates an empty width x height board.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b *Board) idx(x, y int) int {
	return y*b.Width + x
}

// Get returns the cell at (x, y). Preconditions: 0 <= x < Width,
// 0 <= y < Height.
func (b *Board) Get(x, y int) Cell {
	return b.cells[b.idx(x, y)]
}

// Set writes the cell at (x, y). Same preconditions as Get.
func (b *Board) Set(x, y int, c Cell) {
	b.cells[b.idx(x, y)] = c
}
