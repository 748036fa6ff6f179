// Package tui presents the drawing raster on a terminal with half-block cells.
package tui

import (
	"image"
	"image/color"

	"github.com/bethropolis/doodle/internal/palette"
	"github.com/gdamore/tcell/v2"
)

// upperHalf paints the top pixel as foreground and the bottom pixel as background.
const upperHalf = '▀'

// DrawCanvas renders layer composited over bg into area. Cell (col, row)
// shows pixels (col, 2*row) and (col, 2*row+1) relative to area's origin.
func DrawCanvas(t *TUI, layer *image.RGBA, bg color.RGBA, area image.Rectangle) {
	drawCanvas(t.screen, layer, bg, area)
}

func drawCanvas(screen tcell.Screen, layer *image.RGBA, bg color.RGBA, area image.Rectangle) {
	bounds := layer.Bounds()
	pixel := func(x, y int) color.RGBA {
		p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
		if !p.In(bounds) {
			return bg
		}
		return palette.Over(layer.RGBAAt(p.X, p.Y), bg)
	}

	for row := 0; row < area.Dy(); row++ {
		for col := 0; col < area.Dx(); col++ {
			top := pixel(col, 2*row)
			bottom := pixel(col, 2*row+1)
			style := tcell.StyleDefault.Foreground(palette.Tcell(top)).Background(palette.Tcell(bottom))
			screen.SetContent(area.Min.X+col, area.Min.Y+row, upperHalf, nil, style)
		}
	}
}
