package app

import (
	"github.com/bethropolis/doodle/internal/tui"
)

// draw repaints the canvas and the status bar.
func (a *App) draw() {
	index, length := a.canvas.HistoryPosition()
	a.statusBar.SetHistoryInfo(index, length)

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawCanvas(a.tuiManager, a.raster.Image(), a.canvas.State().Background, a.tuiManager.CanvasArea())
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// SetStatusMessage shows a temporary message and schedules a redraw.
// Safe to call from plugin goroutines.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}
