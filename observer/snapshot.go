package observer

import (
	"waitris/game"
)

// Snapshot is the read-only state slice broadcast to spectators. It
// mirrors what the renderer sees; spectators can never mutate play.
type Snapshot struct {
	Rows         []string `json:"rows"`
	Score        uint64   `json:"score"`
	Lines        uint64   `json:"lines"`
	Bombs        int      `json:"bombs"`
	Variety      int      `json:"variety"`
	Streak       int      `json:"streak"`
	QueueLen     int      `json:"queue_len"`
	Status       string   `json:"status"`
	ActiveRun    uint64   `json:"active_run,omitempty"`
	CurrentBomb  bool     `json:"current_bomb,omitempty"`
	PendingClear []int    `json:"pending_clear,omitempty"`
}

// BuildSnapshot flattens the game's render surface into a Snapshot.
// Each row is the two-glyph cell text with the falling piece composed
// in.
func BuildSnapshot(g *game.Game) Snapshot {
	rows := make([][]rune, g.Board.Height)
	for y := range rows {
		row := make([]rune, g.Board.Width*2)
		for x := 0; x < g.Board.Width; x++ {
			c := g.Board.Get(x, y)
			if c.Filled {
				row[x*2] = c.Left
				row[x*2+1] = c.Right
			} else {
				row[x*2] = ' '
				row[x*2+1] = ' '
			}
		}
		rows[y] = row
	}
	if g.ActivePiece {
		for _, c := range g.Current.CellsWithPairs() {
			if c.X >= 0 && c.Y >= 0 && c.X < g.Board.Width && c.Y < g.Board.Height {
				rows[c.Y][c.X*2] = c.Left
				rows[c.Y][c.X*2+1] = c.Right
			}
		}
	}

	snap := Snapshot{
		Rows:         make([]string, len(rows)),
		Score:        g.Score,
		Lines:        g.LinesCleared,
		Bombs:        g.Bombs,
		Variety:      g.VarietyMeter,
		Streak:       g.VarietyStreak,
		QueueLen:     g.QueueLen(),
		Status:       status(g),
		CurrentBomb:  g.CurrentIsBomb,
		PendingClear: g.PendingClear,
	}
	for i, row := range rows {
		snap.Rows[i] = string(row)
	}
	if g.HasActiveRun {
		snap.ActiveRun = g.ActiveRun
	}
	return snap
}

func status(g *game.Game) string {
	switch {
	case g.GameOver:
		return "over"
	case g.IsRunning():
		return "active"
	default:
		return "idle"
	}
}
