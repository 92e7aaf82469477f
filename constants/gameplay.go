package constants

// Board Geometry
const (
	// BoardWidth is the playfield width in board cells
	BoardWidth = 10

	// BoardHeight is the playfield height in board cells
	BoardHeight = 20

	// CellWidth is the terminal width of one board cell (glyph + filler)
	CellWidth = 2

	// PlayWidth is the rendered well width including side walls
	PlayWidth = BoardWidth*CellWidth + 2

	// PlayHeight is the rendered well height including ceiling and floor
	PlayHeight = BoardHeight + 2

	// MinPaneWidth is the smallest terminal width the renderer accepts
	MinPaneWidth = PlayWidth + 2
)

// Command Pieces
const (
	// ChunkSize is the number of characters mapped to one piece payload
	ChunkSize = 8

	// FillerGlyph pads short chunks and empty payload slots
	FillerGlyph = '░'

	// BombGlyph fills the synthetic bomb piece payload
	BombGlyph = '▓'

	// GarbageLeftGlyph and GarbageRightGlyph fill injected garbage rows
	GarbageLeftGlyph  = '#'
	GarbageRightGlyph = '░'

	// InfectedGlyph marks cells overwritten by infection
	InfectedGlyph = '?'
)

// Variety Economy
const (
	// VarietyThreshold is the meter value that converts into one bomb
	VarietyThreshold = 100

	// BombCap is the maximum number of stored bomb charges
	BombCap = 3

	// RepeatPenalty is charged when a command identity repeats
	RepeatPenalty = 5

	// VarietyDecay is the baseline cost charged to every command
	VarietyDecay = 2

	// VarietyBase is the award for a distinct command identity
	VarietyBase = 10

	// VarietyStreakBonus scales the capped streak into bonus points
	VarietyStreakBonus = 3

	// VarietyStreakCap bounds the streak contribution
	VarietyStreakCap = 10
)

// Effects
const (
	// LockFlashFrames is how many frames locked cells stay highlighted
	LockFlashFrames = 1

	// ClearFlashFrames is how many frames full rows flash before clearing
	ClearFlashFrames = 2

	// InfectionMaxCells bounds how many filled cells one infection hits
	InfectionMaxCells = 5

	// BombRadius is the area-clear reach around each bomb cell
	BombRadius = 1
)

// LineScore returns the score awarded for clearing n rows at once.
func LineScore(n int) uint64 {
	switch n {
	case 1:
		return 100
	case 2:
		return 300
	case 3:
		return 500
	case 4:
		return 800
	default:
		return 0
	}
}
