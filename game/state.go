package game

import (
	"math/rand"
	"time"

	"waitris/commands"
	"waitris/constants"
)

// QueuedPiece is one pending piece with its production metadata.
// IsBomb piece entries are a distinct variant: End-event purging never
// touches them, regardless of RunID.
type QueuedPiece struct {
	RunID  uint64
	Cycle  uint64
	Piece  Piece
	IsBomb bool
}

// commandRun tracks one external command's chunked payload, regeneration
// cycle and liveness. outstanding counts this run's still-queued pieces
// so the tracker can evict a run once it is inactive and fully drained.
type commandRun struct {
	id          uint64
	chunks      []string
	cycle       uint64
	active      bool
	identity    string
	outstanding int
}

func newCommandRun(id uint64, chunks []string, identity string) *commandRun {
	return &commandRun{
		id:       id,
		chunks:   chunks,
		active:   true,
		identity: identity,
	}
}

// nextCyclePieces regenerates one piece per chunk with freshly random
// shapes and the deterministic chunk payloads.
func (r *commandRun) nextCyclePieces(rng *rand.Rand) (uint64, []Piece) {
	r.cycle++
	pieces := make([]Piece, 0, len(r.chunks))
	for _, chunk := range r.chunks {
		pieces = append(pieces, NewPiece(RandomShape(rng), commands.ChunkPayload(chunk)))
	}
	return r.cycle, pieces
}

// Game is the core state machine. It is exclusively owned and mutated
// by the main loop; nothing in here blocks.
type Game struct {
	Board        *Board
	Current      Piece
	GameOver     bool
	Score        uint64
	LinesCleared uint64

	PendingClear   []int
	ClearFlashLeft int
	LockFlashCells [][2]int
	LockFlashLeft  int

	pieceQueue []QueuedPiece

	ActivePiece   bool
	ActiveRun     uint64
	HasActiveRun  bool
	CurrentIsBomb bool

	runs map[uint64]*commandRun

	Bombs         int
	VarietyMeter  int
	VarietyStreak int

	lastIdentity string
	hasIdentity  bool

	rng *rand.Rand
}

// New creates a fresh game with a time-seeded rng.
func New() *Game {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a fresh game using the supplied rng, so tests can
// pin the shape/hole/infection rolls.
func NewWithRand(rng *rand.Rand) *Game {
	return &Game{
		Board:   NewBoard(constants.BoardWidth, constants.BoardHeight),
		Current: NewPiece(ShapeI, commands.ChunkPayload("")),
		runs:    make(map[uint64]*commandRun),
		rng:     rng,
	}
}

// CanPlace reports whether every occupied cell of the piece lies inside
// the board on an empty cell.
func (g *Game) CanPlace(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.Y < 0 || c.X >= g.Board.Width || c.Y >= g.Board.Height {
			return false
		}
		if g.Board.Get(c.X, c.Y).Filled {
			return false
		}
	}
	return true
}

// MoveCurrent shifts the falling piece by (dx, dy) if the target
// placement is free. Returns false and leaves state unchanged on
// collision or after game over.
func (g *Game) MoveCurrent(dx, dy int) bool {
	if g.GameOver {
		return false
	}
	next := g.Current.Shifted(dx, dy)
	if !g.CanPlace(next) {
		return false
	}
	g.Current = next
	return true
}

// RotateCurrent advances the falling piece one rotation step. There is
// no kick search: rotation against a wall or the stack simply fails.
func (g *Game) RotateCurrent() bool {
	if g.GameOver {
		return false
	}
	next := g.Current.Rotated()
	if !g.CanPlace(next) {
		return false
	}
	g.Current = next
	return true
}

// LockPiece writes the falling piece into the board as glyph pairs,
// arms the lock flash, schedules any full rows for a deferred clear,
// and detonates the piece if it was a bomb.
func (g *Game) LockPiece() {
	g.LockFlashCells = g.LockFlashCells[:0]
	for _, c := range g.Current.CellsWithPairs() {
		if c.X >= 0 && c.Y >= 0 && c.X < g.Board.Width && c.Y < g.Board.Height {
			g.Board.Set(c.X, c.Y, FilledCell(c.Left, c.Right))
			g.LockFlashCells = append(g.LockFlashCells, [2]int{c.X, c.Y})
		}
	}
	g.LockFlashLeft = constants.LockFlashFrames
	g.HasActiveRun = false
	g.ActivePiece = false

	var full []int
	for y := 0; y < g.Board.Height; y++ {
		filled := true
		for x := 0; x < g.Board.Width; x++ {
			if !g.Board.Get(x, y).Filled {
				filled = false
				break
			}
		}
		if filled {
			full = append(full, y)
		}
	}
	if len(full) > 0 {
		g.PendingClear = full
		g.ClearFlashLeft = constants.ClearFlashFrames
	}

	// The bomb clears board state after its own cells were written, so
	// the detonation removes them along with the neighborhood.
	if g.CurrentIsBomb {
		g.applyBombClear()
	}
}

// TickGravity advances the falling piece one row, locking and spawning
// on contact. Called at a fixed wall-clock cadence by the main loop.
func (g *Game) TickGravity() {
	if g.GameOver || !g.ActivePiece {
		return
	}
	if !g.MoveCurrent(0, 1) {
		g.LockPiece()
		g.SpawnNext()
	}
}

// HardDrop slams the falling piece to the deepest reachable row, then
// locks and spawns.
func (g *Game) HardDrop() {
	if g.GameOver || !g.ActivePiece {
		return
	}
	for g.MoveCurrent(0, 1) {
	}
	g.LockPiece()
	g.SpawnNext()
}

// SpawnNext pops the next queued piece into play. A spawn blocked by
// the existing stack ends the game. An empty queue leaves the game
// idle until a command or bomb charge replenishes it.
func (g *Game) SpawnNext() {
	g.ensureQueue()
	if len(g.pieceQueue) == 0 {
		g.ActivePiece = false
		g.HasActiveRun = false
		g.CurrentIsBomb = false
		return
	}

	qp := g.pieceQueue[0]
	g.pieceQueue = g.pieceQueue[1:]
	if !qp.IsBomb {
		g.releaseRunPiece(qp.RunID)
	}

	if !g.CanPlace(qp.Piece) {
		g.GameOver = true
		g.ActivePiece = false
		g.HasActiveRun = false
		g.CurrentIsBomb = false
		return
	}

	g.Current = qp.Piece
	g.ActivePiece = true
	g.CurrentIsBomb = qp.IsBomb
	g.HasActiveRun = !qp.IsBomb
	if g.HasActiveRun {
		g.ActiveRun = qp.RunID
	}
}

// GhostPiece projects the falling piece to its deepest reachable
// position without mutating the game.
func (g *Game) GhostPiece() Piece {
	ghost := g.Current
	for g.CanPlace(ghost.Shifted(0, 1)) {
		ghost.Y++
	}
	return ghost
}

// HandleStart records a new command run, enqueues its first cycle of
// pieces, and starts play immediately when the game is idle.
func (g *Game) HandleStart(id uint64, command string) {
	if g.GameOver {
		return
	}
	chunks := commands.ToChunks(command)
	identity := commands.Identity(command)
	run := newCommandRun(id, chunks, identity)
	cycle, pieces := run.nextCyclePieces(g.rng)
	for _, p := range pieces {
		g.enqueue(run, QueuedPiece{RunID: id, Cycle: cycle, Piece: p})
	}
	g.runs[id] = run
	if !g.hasIdentity {
		g.lastIdentity = identity
		g.hasIdentity = true
	}
	if !g.ActivePiece {
		g.SpawnNext()
	}
}

// HandleEnd marks a run inactive, discards its speculative regenerated
// pieces, applies the failure punishments on a nonzero exit code, and
// updates the variety economy.
func (g *Game) HandleEnd(id uint64, exitCode int) {
	if g.GameOver {
		return
	}
	run, known := g.runs[id]
	if known {
		run.active = false
	}

	// Only the committed first cycle of a finished run stays eligible.
	// Bomb entries are never purged here.
	kept := g.pieceQueue[:0]
	for _, qp := range g.pieceQueue {
		if !qp.IsBomb && qp.RunID == id && qp.Cycle > 1 {
			g.releaseRunPiece(id)
			continue
		}
		kept = append(kept, qp)
	}
	g.pieceQueue = kept

	if exitCode != 0 {
		g.applyGarbageRow()
		g.applyInfection()
	}
	if known {
		g.applyVariety(run.identity, exitCode)
		g.lastIdentity = run.identity
		g.hasIdentity = true
		g.maybeEvict(id)
	}
}

// ProcessEffects runs once per frame: it counts the flash windows down
// and performs the deferred line clear exactly when the clear flash
// expires.
func (g *Game) ProcessEffects() {
	if g.LockFlashLeft > 0 {
		g.LockFlashLeft--
	}
	if g.ClearFlashLeft > 0 {
		g.ClearFlashLeft--
		if g.ClearFlashLeft == 0 && len(g.PendingClear) > 0 {
			g.performPendingClear()
		}
	}
}

// IsRunning reports whether the game has work: a falling piece, queued
// pieces, or a live command run.
func (g *Game) IsRunning() bool {
	if g.ActivePiece || len(g.pieceQueue) > 0 {
		return true
	}
	for _, run := range g.runs {
		if run.active {
			return true
		}
	}
	return false
}

// QueueLen returns the number of pending pieces.
func (g *Game) QueueLen() int {
	return len(g.pieceQueue)
}

// QueuedPieces returns a copy of the pending piece buffer, front first.
func (g *Game) QueuedPieces() []QueuedPiece {
	out := make([]QueuedPiece, len(g.pieceQueue))
	copy(out, g.pieceQueue)
	return out
}

// LastIdentity returns the most recent command identity and whether
// one has been recorded this session.
func (g *Game) LastIdentity() (string, bool) {
	return g.lastIdentity, g.hasIdentity
}

// TrackedRuns returns how many runs the tracker currently holds.
func (g *Game) TrackedRuns() int {
	return len(g.runs)
}

func (g *Game) enqueue(run *commandRun, qp QueuedPiece) {
	g.pieceQueue = append(g.pieceQueue, qp)
	run.outstanding++
}

// releaseRunPiece decrements a run's outstanding count and evicts the
// run once it is inactive and fully drained.
func (g *Game) releaseRunPiece(id uint64) {
	run, ok := g.runs[id]
	if !ok {
		return
	}
	if run.outstanding > 0 {
		run.outstanding--
	}
	g.maybeEvict(id)
}

func (g *Game) maybeEvict(id uint64) {
	if run, ok := g.runs[id]; ok && !run.active && run.outstanding == 0 {
		delete(g.runs, id)
	}
}

// ensureQueue refills the pending buffer: every live run contributes a
// fresh cycle of pieces; if nothing is live and a bomb charge is
// stored, exactly one bomb piece is dispensed.
func (g *Game) ensureQueue() {
	if len(g.pieceQueue) > 0 {
		return
	}
	for _, run := range g.runs {
		if !run.active {
			continue
		}
		cycle, pieces := run.nextCyclePieces(g.rng)
		for _, p := range pieces {
			g.enqueue(run, QueuedPiece{RunID: run.id, Cycle: cycle, Piece: p})
		}
	}
	if len(g.pieceQueue) == 0 && g.Bombs > 0 {
		g.pieceQueue = append(g.pieceQueue, QueuedPiece{
			Piece:  makeBombPiece(),
			IsBomb: true,
		})
		g.Bombs--
	}
}

// makeBombPiece builds the synthetic bomb: an O piece for a compact
// 2x2 footprint with a solid payload.
func makeBombPiece() Piece {
	payload := make([]rune, constants.ChunkSize)
	for i := range payload {
		payload[i] = constants.BombGlyph
	}
	return NewPiece(ShapeO, payload)
}

func (g *Game) performPendingClear() {
	cleared := len(g.PendingClear)
	if cleared == 0 {
		return
	}
	pending := make(map[int]bool, cleared)
	for _, y := range g.PendingClear {
		pending[y] = true
	}

	next := NewBoard(g.Board.Width, g.Board.Height)
	dst := g.Board.Height - 1
	for y := g.Board.Height - 1; y >= 0; y-- {
		if pending[y] {
			continue
		}
		for x := 0; x < g.Board.Width; x++ {
			next.Set(x, dst, g.Board.Get(x, y))
		}
		dst--
	}
	g.Board = next

	g.LinesCleared += uint64(cleared)
	g.Score += constants.LineScore(cleared)
	g.PendingClear = nil
}
