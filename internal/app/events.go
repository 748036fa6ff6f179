package app

import (
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/statusbar"
)

// handleHistoryChangedForStatus updates the history position on the status bar.
func (a *App) handleHistoryChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistoryInfo(data.Index, data.Len)
	}
	return false
}

// handleDrawSettingsForStatus refreshes tool, color and background on the status bar.
func (a *App) handleDrawSettingsForStatus(event.Event) bool {
	a.syncDrawInfo()
	return false
}

func (a *App) handleCanvasResized(e event.Event) bool {
	if data, ok := e.Data.(event.CanvasResizedData); ok {
		logger.DebugTagf("draw", "Canvas resized to %dx%d px", data.Bounds.Dx(), data.Bounds.Dy())
	}
	return false
}

func (a *App) syncDrawInfo() {
	s := a.canvas.State()
	a.statusBar.SetDrawInfo(statusbar.DrawInfo{
		Tool:       s.Tool.String(),
		Shape:      s.Shape.String(),
		Color:      s.Color,
		Size:       s.Size,
		Background: s.Background,
	})
	logger.DebugTagf("draw", "Draw settings: %s %s %s %.0fpx", s.Tool, s.Shape, palette.Hex(s.Color), s.Size)
}
