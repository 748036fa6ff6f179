package tui

import (
	"fmt"
	"image"

	"github.com/bethropolis/doodle/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen          tcell.Screen
	statusBarHeight int
	closed          bool
}

// New creates and initializes a terminal screen with mouse reporting enabled.
func New(activeTheme *theme.Theme, statusBarHeight int) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, activeTheme, statusBarHeight)
}

// NewWithScreen initializes an existing screen, e.g. a simulation screen in tests.
func NewWithScreen(s tcell.Screen, activeTheme *theme.Theme, statusBarHeight int) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	// Drag reporting is what turns button holds into pointer moves.
	s.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	if activeTheme != nil {
		s.SetStyle(activeTheme.GetStyle(theme.StyleDefault))
	}
	return &TUI{screen: s, statusBarHeight: statusBarHeight}, nil
}

// Close finalizes the tcell screen. Later calls do nothing.
func (t *TUI) Close() {
	if t.screen != nil && !t.closed {
		t.closed = true
		t.screen.DisableMouse()
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event. It returns nil once the screen is finalized.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync repaints everything, used after resizes.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// CanvasArea is the cell rectangle above the status bar.
func (t *TUI) CanvasArea() image.Rectangle {
	w, h := t.Size()
	return image.Rect(0, 0, w, max(h-t.statusBarHeight, 0))
}

// CanvasPixels is the raster size that fills CanvasArea: one pixel per column,
// two per row.
func (t *TUI) CanvasPixels() (int, int) {
	area := t.CanvasArea()
	return area.Dx(), area.Dy() * 2
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
