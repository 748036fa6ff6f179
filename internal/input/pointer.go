package input

import (
	"image"

	"github.com/bethropolis/doodle/internal/canvas"
	"github.com/bethropolis/doodle/internal/surface"
	"github.com/gdamore/tcell/v2"
)

// CellToPoint maps a terminal cell to canvas pixel coordinates relative to
// area. A cell covers one pixel column and two pixel rows; the point is the
// cell's center.
func CellToPoint(col, row int, area image.Rectangle) surface.Point {
	return surface.Pt(float64(col-area.Min.X)+0.5, float64(2*(row-area.Min.Y))+1)
}

// PointerTracker turns tcell mouse reports into canvas pointer input.
// tcell reports button state rather than transitions, so the tracker keeps
// the last button state to find presses, and a separate drawing flag so a
// drag that leaves the canvas stays finished until the button is released.
type PointerTracker struct {
	area    image.Rectangle // canvas region in cells
	held    bool            // primary button down at the last report
	drawing bool            // a press inside the area is in progress
}

// NewPointerTracker creates a tracker for the given canvas cell area.
func NewPointerTracker(area image.Rectangle) *PointerTracker {
	return &PointerTracker{area: area}
}

// SetArea updates the canvas region, e.g. after a terminal resize.
func (t *PointerTracker) SetArea(area image.Rectangle) {
	t.area = area
}

// Pressed reports whether a stroke started on the canvas is still in progress.
func (t *PointerTracker) Pressed() bool { return t.drawing }

// Translate converts ev into a canvas input. ok is false for events the
// canvas does not care about: hover, other buttons, presses off-canvas and
// held motion after the pointer left the canvas.
func (t *PointerTracker) Translate(ev *tcell.EventMouse) (in canvas.Input, ok bool) {
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !t.held
	t.held = down

	col, row := ev.Position()
	inside := image.Pt(col, row).In(t.area)
	pos := CellToPoint(col, row, t.area)

	switch {
	case pressed:
		if !inside {
			return canvas.Input{}, false
		}
		t.drawing = true
		return canvas.PointerDown(pos.X, pos.Y), true
	case down && t.drawing:
		if !inside {
			t.drawing = false
			return canvas.PointerLeave(), true
		}
		return canvas.PointerMove(pos.X, pos.Y), true
	case !down && t.drawing:
		t.drawing = false
		return canvas.PointerUp(), true
	}
	return canvas.Input{}, false
}
