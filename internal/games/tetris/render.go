package tetris

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Every board cell is drawn two characters wide so blocks look square.
const cellW = 2

const (
	blockGlyph = '█'
	emptyGlyph = '·'
	panelW     = 14
	previewH   = 4
)

// layout positions the board and side panel on screen.
type layout struct {
	board core.Rect // box around the playfield
	panel core.Point
	rows  int
	fits  bool
}

func newLayout(cols, rows, screenW, screenH int) layout {
	boxW := cols*cellW + 2
	boxH := rows + 2
	needW := boxW + 2 + panelW
	needH := boxH + 1 // HUD line

	x := (screenW - needW) / 2
	if x < 0 {
		x = 0
	}
	y := 1 + (screenH-needH)/2
	if y < 1 {
		y = 1
	}

	return layout{
		board: core.NewRect(x, y, boxW, boxH),
		panel: core.Pt(x+boxW+2, y),
		rows:  rows,
		fits:  screenW >= needW && screenH >= needH,
	}
}

// toScreen maps a board cell to the left screen column and row it occupies.
func (l layout) toScreen(x, y int) (int, int) {
	return l.board.X + 1 + x*cellW, l.board.Y + 1 + (l.rows - 1 - y)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.layout.board.W+2+panelW, g.layout.board.H+1))
		return
	}

	snap := g.eng.Snapshot()
	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap)
	g.renderPanel(dst, snap)

	switch {
	case snap.State == engine.StateGameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Lines: %d", snap.Score))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	hud := fmt.Sprintf(" Tetris   Lines: %d   Pieces: %d", snap.Score, snap.Locks)
	dst.DrawText(g.layout.board.X, g.layout.board.Y-1, hud)
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawBox(g.layout.board)

	for y := 0; y < snap.Rows; y++ {
		for x := 0; x < snap.Columns; x++ {
			sx, sy := g.layout.toScreen(x, y)
			if c := snap.Board[y][x]; c.Filled {
				drawBlock(dst, sx, sy, c.Color)
			} else {
				dst.SetColored(sx, sy, ' ', core.ColorDefault)
				dst.SetColored(sx+1, sy, emptyGlyph, core.ColorGray)
			}
		}
	}

	if snap.State == engine.StateGameOver {
		return
	}
	for _, p := range snap.Active.Cells {
		// Cells above the top row stay hidden until they fall into view.
		if p.X < 0 || p.X >= snap.Columns || p.Y < 0 || p.Y >= snap.Rows {
			continue
		}
		sx, sy := g.layout.toScreen(p.X, p.Y)
		drawBlock(dst, sx, sy, snap.Active.Color)
	}
}

func (g *Game) renderPanel(dst *core.Screen, snap engine.Snapshot) {
	x, y := g.layout.panel.X, g.layout.panel.Y

	dst.DrawText(x, y, "NEXT")
	drawPreview(dst, x, y+1, &snap.Next)

	y += previewH + 2
	hold := "HOLD"
	if snap.HoldUsed {
		hold = "HOLD (used)"
	}
	dst.DrawText(x, y, hold)
	drawPreview(dst, x, y+1, snap.Held)

	y += previewH + 2
	dst.DrawText(x, y, "LINES")
	dst.DrawText(x, y+1, fmt.Sprintf("%d", snap.Score))
}

// drawPreview draws a piece from its offsets inside a previewH-row area
// whose top-left corner is (x, y).
func drawPreview(dst *core.Screen, x, y int, p *engine.PieceView) {
	if p == nil || len(p.Cells) == 0 {
		dst.DrawTextColored(x, y, "--", core.ColorGray)
		return
	}

	minX, maxY := math.MaxInt, math.MinInt
	for _, c := range p.Cells {
		minX = min(minX, c.X)
		maxY = max(maxY, c.Y)
	}
	for _, c := range p.Cells {
		sy := y + (maxY - c.Y)
		if sy >= y+previewH {
			continue
		}
		drawBlock(dst, x+(c.X-minX)*cellW, sy, p.Color)
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, blockGlyph, c)
	dst.SetColored(x+1, y, blockGlyph, c)
}

// renderOverlay draws a two-line message centered over the board.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	b := g.layout.board
	w := max(len(line1), len(line2)) + 4
	box := core.NewRect(b.X+(b.W-w)/2, b.Y+b.H/2-2, w, 5)

	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box)
	dst.DrawText(box.X+(w-len(line1))/2, box.Y+1, line1)
	dst.DrawText(box.X+(w-len(line2))/2, box.Y+3, line2)
}
