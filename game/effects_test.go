package game

import (
	"testing"

	"waitris/constants"
)

func TestVarietyRepeatResetsStreak(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true
	g.VarietyMeter = 50

	// Repeating the same identity never earns points and keeps the
	// streak pinned at zero.
	for i := 0; i < 3; i++ {
		g.applyVariety("ls", 0)
		if g.VarietyStreak != 0 {
			t.Fatalf("round %d: streak = %d, want 0", i, g.VarietyStreak)
		}
	}
	if g.VarietyMeter != 50-3*constants.RepeatPenalty {
		t.Errorf("meter = %d, want %d", g.VarietyMeter, 50-3*constants.RepeatPenalty)
	}
}

func TestVarietyDistinctStreakGrowth(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true

	// Alternating distinct identities: each call pays the decay, then
	// earns 10 + 3*min(streak, 10).
	names := []string{"git", "make", "vim", "cargo"}
	meter := 0
	for i, name := range names {
		g.applyVariety(name, 0)
		g.lastIdentity = name

		wantStreak := i + 1
		if g.VarietyStreak != wantStreak {
			t.Fatalf("streak = %d, want %d", g.VarietyStreak, wantStreak)
		}
		meter -= constants.VarietyDecay
		if meter < 0 {
			meter = 0
		}
		meter += constants.VarietyBase + constants.VarietyStreakBonus*wantStreak
		if g.VarietyMeter != meter {
			t.Fatalf("meter = %d, want %d", g.VarietyMeter, meter)
		}
	}
}

func TestVarietyStreakBonusCapped(t *testing.T) {
	g := testGame(1)
	g.VarietyStreak = 25
	g.lastIdentity = "ls"
	g.hasIdentity = true

	g.applyVariety("git", 0)
	want := constants.VarietyBase + constants.VarietyStreakBonus*constants.VarietyStreakCap
	if g.VarietyMeter != want {
		t.Errorf("meter = %d, want %d (capped streak)", g.VarietyMeter, want)
	}
}

func TestVarietyFailureHalvesPoints(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true

	g.applyVariety("git", 1)
	// Streak 1 earns 13 points, halved (integer) to 6; no decay floor
	// effect since the meter started at 0.
	if g.VarietyMeter != 6 {
		t.Errorf("meter = %d, want 6", g.VarietyMeter)
	}
}

func TestVarietyThresholdConversion(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true
	g.VarietyMeter = 295
	g.VarietyStreak = 0

	// Decay -2 then award 13: 295 - 2 + 13 = 306 crosses the
	// threshold three times.
	g.applyVariety("git", 0)
	if g.Bombs != 3 {
		t.Errorf("Bombs = %d, want 3", g.Bombs)
	}
	if g.VarietyMeter != 6 {
		t.Errorf("meter remainder = %d, want 6", g.VarietyMeter)
	}
}

func TestVarietyConversionRespectsCap(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true
	g.Bombs = constants.BombCap
	g.VarietyMeter = 195

	// The crossing is still drained from the meter even though the
	// cap blocks the bomb credit.
	g.applyVariety("git", 0)
	if g.Bombs != constants.BombCap {
		t.Errorf("Bombs = %d, want cap %d", g.Bombs, constants.BombCap)
	}
	if g.VarietyMeter != 6 {
		t.Errorf("meter = %d, want 6", g.VarietyMeter)
	}
}

func TestVarietyMeterNeverNegative(t *testing.T) {
	g := testGame(1)
	g.lastIdentity = "ls"
	g.hasIdentity = true
	g.VarietyMeter = 1

	g.applyVariety("ls", 0)
	if g.VarietyMeter != 0 {
		t.Errorf("meter = %d, want 0", g.VarietyMeter)
	}
}

func TestBombClearEmptiesNeighborhood(t *testing.T) {
	g := testGame(1)

	// Stack garbage across the bottom rows.
	for y := g.Board.Height - 4; y < g.Board.Height; y++ {
		for x := 0; x < g.Board.Width; x++ {
			g.Board.Set(x, y, FilledCell('x', '░'))
		}
	}

	bomb := makeBombPiece()
	bomb.X = 3
	bomb.Y = g.Board.Height - 3 // occupies rows H-3 and H-2, columns 4,5
	g.Current = bomb
	g.CurrentIsBomb = true
	g.LockPiece()

	// Neighborhood spans columns 3..6, rows H-4..H-1, bomb cells
	// included.
	for y := g.Board.Height - 4; y < g.Board.Height; y++ {
		for x := 3; x <= 6; x++ {
			if g.Board.Get(x, y).Filled {
				t.Errorf("cell (%d,%d) survived the bomb", x, y)
			}
		}
	}
	// Cells outside the neighborhood are untouched.
	if !g.Board.Get(0, g.Board.Height-1).Filled {
		t.Error("cell outside the blast radius was cleared")
	}
	if !g.Board.Get(7, g.Board.Height-1).Filled {
		t.Error("cell outside the blast radius was cleared")
	}
}

func TestGarbageRowShiftAndHole(t *testing.T) {
	g := testGame(7)
	g.Board.Set(2, g.Board.Height-1, FilledCell('a', '░'))
	g.Board.Set(3, 10, FilledCell('b', '░'))

	g.applyGarbageRow()

	if g.GameOver {
		t.Fatal("garbage without ceiling contact ended the game")
	}
	// Previously bottom cell moved up one row.
	if !g.Board.Get(2, g.Board.Height-2).Filled {
		t.Error("bottom cell did not shift up")
	}
	if !g.Board.Get(3, 9).Filled {
		t.Error("mid-board cell did not shift up")
	}
	// New bottom row has exactly one empty hole.
	holes := 0
	for x := 0; x < g.Board.Width; x++ {
		if !g.Board.Get(x, g.Board.Height-1).Filled {
			holes++
		}
	}
	if holes != 1 {
		t.Errorf("bottom row holes = %d, want 1", holes)
	}
}

func TestGarbageRowCeilingOverflow(t *testing.T) {
	g := testGame(1)
	g.Board.Set(4, 0, FilledCell('x', '░'))

	g.applyGarbageRow()
	if !g.GameOver {
		t.Error("ceiling contact before the shift should end the game")
	}
}

func TestInfectionPreservesOccupancy(t *testing.T) {
	g := testGame(3)
	for x := 0; x < g.Board.Width; x++ {
		g.Board.Set(x, g.Board.Height-1, FilledCell('a', 'b'))
	}
	before := countFilled(g.Board)

	g.applyInfection()

	if countFilled(g.Board) != before {
		t.Error("infection changed occupancy")
	}
	infected := 0
	for x := 0; x < g.Board.Width; x++ {
		if g.Board.Get(x, g.Board.Height-1).Left == constants.InfectedGlyph {
			infected++
		}
	}
	if infected != constants.InfectionMaxCells {
		t.Errorf("infected cells = %d, want %d", infected, constants.InfectionMaxCells)
	}
}

func TestInfectionFewFilledCells(t *testing.T) {
	g := testGame(3)
	g.Board.Set(1, 5, FilledCell('a', 'b'))
	g.Board.Set(2, 5, FilledCell('c', 'd'))

	g.applyInfection()

	for _, x := range []int{1, 2} {
		if g.Board.Get(x, 5).Left != constants.InfectedGlyph {
			t.Errorf("cell (%d,5) not infected with only 2 candidates", x)
		}
	}
}

func TestEndWithFailureInjectsGarbage(t *testing.T) {
	g := testGame(5)
	g.HandleStart(1, "make")
	g.HandleEnd(1, 2)

	filled := 0
	for x := 0; x < g.Board.Width; x++ {
		if g.Board.Get(x, g.Board.Height-1).Filled {
			filled++
		}
	}
	if filled != g.Board.Width-1 {
		t.Errorf("garbage row filled cells = %d, want %d", filled, g.Board.Width-1)
	}
}
