// Package ui renders the game state to a tcell screen. It reads the
// game exclusively; no gameplay mutation happens here.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"waitris/constants"
	"waitris/game"
)

// Renderer draws one game onto a screen each frame.
type Renderer struct {
	screen tcell.Screen

	styleDefault tcell.Style
	styleDim     tcell.Style
	styleFlash   tcell.Style
	styleClear   tcell.Style
	styleBomb    tcell.Style
	styleLabel   tcell.Style
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	def := tcell.StyleDefault
	return &Renderer{
		screen:       screen,
		styleDefault: def,
		styleDim:     def.Foreground(tcell.ColorGray),
		styleFlash:   def.Bold(true),
		styleClear:   def.Foreground(tcell.ColorWhite).Bold(true),
		styleBomb:    def.Foreground(tcell.ColorRed).Bold(true),
		styleLabel:   def.Foreground(tcell.ColorYellow),
	}
}

// Draw renders one full frame.
func (r *Renderer) Draw(g *game.Game) {
	r.screen.Clear()
	width, height := r.screen.Size()

	if width < constants.MinPaneWidth {
		msg := fmt.Sprintf("RESIZE PANE (min width: %d)", constants.MinPaneWidth)
		r.drawText((width-len(msg))/2, height/2, msg, r.styleLabel)
		r.screen.Show()
		return
	}

	// Center the fixed-size well; info above, controls below.
	ox := (width - constants.PlayWidth) / 2
	oy := (height - constants.PlayHeight) / 2
	if oy < 3 {
		oy = 3
	}

	r.drawInfo(g, ox, oy-3)
	r.drawWell(g, ox, oy)
	r.drawControls(ox, oy+constants.PlayHeight)

	if g.GameOver {
		r.drawGameOver(ox, oy)
	}

	r.screen.Show()
}

func (r *Renderer) drawWell(g *game.Game, ox, oy int) {
	right := constants.PlayWidth - 1
	bottom := constants.PlayHeight - 1

	// Border: light ceiling and sides, heavy floor.
	r.set(ox, oy, '┌', r.styleDim)
	r.set(ox+right, oy, '┐', r.styleDim)
	r.set(ox, oy+bottom, '└', r.styleDim)
	r.set(ox+right, oy+bottom, '┘', r.styleDim)
	for x := 1; x < right; x++ {
		r.set(ox+x, oy, '─', r.styleDim)
		r.set(ox+x, oy+bottom, '═', r.styleDim)
	}
	for y := 1; y < bottom; y++ {
		r.set(ox, oy+y, '│', r.styleDim)
		r.set(ox+right, oy+y, '│', r.styleDim)
	}

	// Locked cells, with the lock flash override.
	flashing := func(x, y int) bool {
		if g.LockFlashLeft <= 0 {
			return false
		}
		for _, c := range g.LockFlashCells {
			if c[0] == x && c[1] == y {
				return true
			}
		}
		return false
	}
	for y := 0; y < g.Board.Height; y++ {
		for x := 0; x < g.Board.Width; x++ {
			cell := g.Board.Get(x, y)
			if !cell.Filled {
				continue
			}
			if flashing(x, y) {
				r.plotBlock(ox, oy, x, y, '▓', '▓', r.styleFlash)
			} else {
				r.plotBlock(ox, oy, x, y, cell.Left, cell.Right, r.styleDefault)
			}
		}
	}

	if g.ActivePiece {
		if g.CurrentIsBomb {
			r.drawBanner(ox, oy, " BOMB INBOUND ")
		}

		// Ghost projection under the falling piece.
		for _, c := range g.GhostPiece().Cells() {
			if c.X >= 0 && c.Y >= 0 && c.X < g.Board.Width && c.Y < g.Board.Height {
				r.plotBlock(ox, oy, c.X, c.Y, '·', '·', r.styleDim)
			}
		}

		style := r.styleDefault
		if g.CurrentIsBomb {
			style = r.styleBomb
		}
		for _, c := range g.Current.CellsWithPairs() {
			if c.X >= 0 && c.Y >= 0 && c.X < g.Board.Width && c.Y < g.Board.Height {
				r.plotBlock(ox, oy, c.X, c.Y, c.Left, c.Right, style)
			}
		}
	}

	// Line clear flash paints over everything in the row.
	if g.ClearFlashLeft > 0 {
		for _, row := range g.PendingClear {
			if row < 0 || row >= g.Board.Height {
				continue
			}
			for x := 0; x < g.Board.Width; x++ {
				r.plotBlock(ox, oy, x, row, '█', '█', r.styleClear)
			}
		}
	}
}

// plotBlock draws one board cell as a two-character block inside the
// well border.
func (r *Renderer) plotBlock(ox, oy, bx, by int, left, right rune, style tcell.Style) {
	gx := ox + 1 + bx*constants.CellWidth
	gy := oy + 1 + by
	r.set(gx, gy, left, style)
	r.set(gx+1, gy, right, style)
}

func (r *Renderer) drawBanner(ox, oy int, banner string) {
	start := (constants.PlayWidth - len(banner)) / 2
	if start < 1 {
		start = 1
	}
	for i, ch := range banner {
		if start+i < constants.PlayWidth-1 {
			r.set(ox+start+i, oy, ch, r.styleBomb)
		}
	}
}

func (r *Renderer) drawInfo(g *game.Game, ox, oy int) {
	status := "IDLE"
	switch {
	case g.GameOver:
		status = "OVER"
	case g.IsRunning():
		// Blink the label instead of holding it steady.
		if (time.Now().UnixMilli()/int64(constants.StatusBlinkInterval/time.Millisecond))%2 == 0 {
			status = "ACTIVE"
		} else {
			status = ""
		}
	}

	r.drawText(ox, oy, fmt.Sprintf("SCORE %-8d LINES %-5d %s", g.Score, g.LinesCleared, status), r.styleLabel)
	r.drawText(ox, oy+1, fmt.Sprintf("BOMBS %-8d VARIETY %d", g.Bombs, g.VarietyMeter), r.styleLabel)
}

func (r *Renderer) drawControls(ox, oy int) {
	r.drawText(ox, oy, "←/→ move  ↓ soft  ↑ rotate", r.styleDim)
	r.drawText(ox, oy+1, "space slam  q quit", r.styleDim)
}

func (r *Renderer) drawGameOver(ox, oy int) {
	lines := []string{
		"┌──────────────┐",
		"│  GAME OVER   │",
		"│   press q    │",
		"└──────────────┘",
	}
	w := len([]rune(lines[0]))
	x := ox + (constants.PlayWidth-w)/2
	y := oy + constants.PlayHeight/2 - 2
	for dy, line := range lines {
		for dx, ch := range []rune(line) {
			r.set(x+dx, y+dy, ch, r.styleFlash)
		}
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.set(x+i, y, ch, style)
	}
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	r.screen.SetContent(x, y, ch, nil, style)
}
