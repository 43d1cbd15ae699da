package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/sim"
)

// hudHeight is the number of rows above the well: status line and separator.
const hudHeight = 2

// kindColors are the piece colors used when the theme does not set one.
var kindColors = map[sim.Cell]core.Color{
	sim.I: core.ColorCyan,
	sim.J: core.ColorBlue,
	sim.L: core.ColorOrange,
	sim.O: core.ColorYellow,
	sim.S: core.ColorGreen,
	sim.Z: core.ColorRed,
	sim.T: core.ColorPurple,
}

// wellSize returns the screen footprint of the well including its frame.
func (g *Game) wellSize() (w, h int) {
	w, h = sim.Width*config.CellWidth, sim.Height
	if g.theme.ShowBorder {
		w += 2
		h += 2
	}
	return w, h
}

// MinScreenSize returns the smallest screen the game can be drawn on.
func (g *Game) MinScreenSize() (w, h int) {
	w, h = g.wellSize()
	return w, h + hudHeight
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()

	g.renderHUD(dst)

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()),
			"Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}
	if g.engine == nil {
		return
	}

	wellW, wellH := g.wellSize()
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	well := area.Centered(wellW, wellH)
	g.renderWell(dst, well)

	switch {
	case g.engine.IsGameOver():
		g.renderOverlay(dst, well, "GAME OVER", fmt.Sprintf("Lines: %d", g.engine.Lines()), "R to restart")
	case g.paused:
		g.renderOverlay(dst, well, "PAUSED", "P to resume")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " Tetris"
	if g.engine != nil {
		played := g.engine.Played().Truncate(time.Second)
		hud = fmt.Sprintf(" Tetris | Lines: %d  Pieces: %d  Time: %s", g.engine.Lines(), g.engine.Pieces(), played)
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderWell draws the frame and every board cell, the active piece included.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	inner := well
	if g.theme.ShowBorder {
		dst.DrawBoxColored(well, g.theme.Color("border", core.ColorWhite))
		inner = core.NewRect(well.X+1, well.Y+1, well.W-2, well.H-2)
	}

	block := []rune(g.theme.Block)
	empty := []rune(g.theme.Empty)
	emptyColor := g.theme.Color("empty", core.ColorGray)

	view := g.engine.View()
	for y := range sim.Height {
		for x := range sim.Width {
			sx := inner.X + x*config.CellWidth
			sy := inner.Y + y

			cell := view[y][x]
			glyph, color := empty, emptyColor
			if !cell.IsEmpty() {
				glyph, color = block, g.theme.Color(cell.String(), kindColors[cell])
			}
			for i, r := range glyph {
				dst.SetColored(sx+i, sy, r, color)
			}
		}
	}
}

// renderOverlay draws a boxed message centered inside area.
func (g *Game) renderOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	box := area.Centered(maxLen+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l)
	}
}
