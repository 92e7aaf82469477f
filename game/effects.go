package game

import "waitris/constants"

// applyBombClear empties the 3x3 neighborhood (clamped to the board)
// around every cell the just-locked bomb occupies. Runs after the bomb
// cells were written, so the bomb removes itself too.
func (g *Game) applyBombClear() {
	seen := make(map[[2]int]bool)
	for _, c := range g.Current.Cells() {
		for dy := -constants.BombRadius; dy <= constants.BombRadius; dy++ {
			for dx := -constants.BombRadius; dx <= constants.BombRadius; dx++ {
				nx, ny := c.X+dx, c.Y+dy
				if nx < 0 || ny < 0 || nx >= g.Board.Width || ny >= g.Board.Height {
					continue
				}
				seen[[2]int{nx, ny}] = true
			}
		}
	}
	for cell := range seen {
		g.Board.Set(cell[0], cell[1], Cell{})
	}
}

// applyGarbageRow shifts every row up by one (row 0 is discarded) and
// fills the new bottom row with garbage except for one random hole
// column. If the stack was already touching the ceiling before the
// shift, the game is over.
func (g *Game) applyGarbageRow() {
	overflow := false
	for x := 0; x < g.Board.Width; x++ {
		if g.Board.Get(x, 0).Filled {
			overflow = true
			break
		}
	}

	hole := g.rng.Intn(g.Board.Width)
	next := NewBoard(g.Board.Width, g.Board.Height)
	for y := 1; y < g.Board.Height; y++ {
		for x := 0; x < g.Board.Width; x++ {
			next.Set(x, y-1, g.Board.Get(x, y))
		}
	}
	for x := 0; x < g.Board.Width; x++ {
		if x == hole {
			continue
		}
		next.Set(x, g.Board.Height-1, FilledCell(constants.GarbageLeftGlyph, constants.GarbageRightGlyph))
	}
	g.Board = next

	if overflow {
		g.GameOver = true
	}
}

// applyInfection overwrites up to InfectionMaxCells random filled cells
// with the infected marker. Occupancy is unchanged; the punishment is
// cosmetic.
func (g *Game) applyInfection() {
	var filled [][2]int
	for y := 0; y < g.Board.Height; y++ {
		for x := 0; x < g.Board.Width; x++ {
			if g.Board.Get(x, y).Filled {
				filled = append(filled, [2]int{x, y})
			}
		}
	}
	count := len(filled)
	if count > constants.InfectionMaxCells {
		count = constants.InfectionMaxCells
	}
	g.rng.Shuffle(len(filled), func(i, j int) {
		filled[i], filled[j] = filled[j], filled[i]
	})
	for _, cell := range filled[:count] {
		g.Board.Set(cell[0], cell[1], FilledCell(constants.InfectedGlyph, constants.GarbageRightGlyph))
	}
}

// applyVariety updates the variety meter for one finished command.
// Repeating the previous identity costs the repeat penalty and resets
// the streak; a distinct identity pays the baseline decay, extends the
// streak and earns streak-scaled points (halved on failure). Every full
// threshold crossed converts into a bomb charge up to the cap; with the
// cap hit the meter is still drained, so excess crossings are wasted.
func (g *Game) applyVariety(identity string, exitCode int) {
	sameAsLast := g.hasIdentity && g.lastIdentity == identity

	points := 0
	if sameAsLast {
		g.VarietyMeter -= constants.RepeatPenalty
		g.VarietyStreak = 0
	} else {
		g.VarietyMeter -= constants.VarietyDecay
		g.VarietyStreak++
		streak := g.VarietyStreak
		if streak > constants.VarietyStreakCap {
			streak = constants.VarietyStreakCap
		}
		points = constants.VarietyBase + constants.VarietyStreakBonus*streak
	}
	if g.VarietyMeter < 0 {
		g.VarietyMeter = 0
	}

	if exitCode != 0 {
		points /= 2
	}
	g.VarietyMeter += points

	for g.VarietyMeter >= constants.VarietyThreshold {
		g.VarietyMeter -= constants.VarietyThreshold
		if g.Bombs < constants.BombCap {
			g.Bombs++
		}
	}
}
