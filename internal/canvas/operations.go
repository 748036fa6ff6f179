package canvas

import (
	"image/color"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/history"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/storage"
)

// SetTool selects pencil or eraser and returns to freehand strokes.
func (c *Controller) SetTool(t Tool) {
	c.finish()
	c.state.Tool = t
	c.state.Shape = ShapeNone
	c.dispatchTool()
}

// SetShape selects a shape, or ShapeNone for freehand. The tool is kept.
func (c *Controller) SetShape(s Shape) {
	c.finish()
	c.state.Shape = s
	c.dispatchTool()
}

// SetColor sets the pencil color.
func (c *Controller) SetColor(col color.RGBA) {
	col.A = 0xff
	c.state.Color = col
	c.dispatchTool()
}

// SetSize sets the stroke width, clamped to [MinSize, MaxSize].
func (c *Controller) SetSize(size float64) {
	c.state.Size = clampSize(size)
	c.dispatchTool()
}

// SetBackgroundColor changes the fill shown under the drawing. Pixels already
// painted by the eraser keep the old color.
func (c *Controller) SetBackgroundColor(col color.RGBA) {
	col.A = 0xff
	c.state.Background = col
	c.persistBackground()
	c.eventManager.Dispatch(event.TypeBackgroundChanged, event.BackgroundChangedData{Color: palette.Hex(col)})
}

// Undo steps back one snapshot. It reports false at the oldest state.
func (c *Controller) Undo() bool {
	c.finish()
	snap, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.apply(snap)
	return true
}

// Redo steps forward one snapshot. It reports false when there is nothing to redo.
func (c *Controller) Redo() bool {
	c.finish()
	snap, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.apply(snap)
	return true
}

func (c *Controller) apply(snap *history.Snapshot) {
	c.surface.Clear()
	c.surface.RestorePixels(snap)
	c.persist()
	c.dispatchHistory()
}

// ResetCanvas clears the drawing and restarts history from a blank baseline.
// An in-flight stroke or shape is dropped.
func (c *Controller) ResetCanvas() {
	c.mode = ModeIdle
	c.surface.Clear()
	c.history.Reset()
	c.history.Append(c.surface.SnapshotPixels())
	c.persist()
	c.eventManager.Dispatch(event.TypeCanvasReset, nil)
	c.dispatchHistory()
}

// ExportImage returns the visible drawing flattened over the background as PNG.
func (c *Controller) ExportImage() ([]byte, error) {
	layer := c.surface.SnapshotPixels()
	return export.EncodePNG(export.Flatten(layer.Image(), c.state.Background))
}

// Load restores the persisted background and drawing into a one-entry history.
// Without a store, or with nothing stored, history starts from a blank baseline.
// Storage errors are logged and treated as absent data.
func (c *Controller) Load() {
	c.mode = ModeIdle
	c.surface.Clear()
	c.history.Reset()

	if c.store != nil {
		c.loadBackground()
		c.loadDrawing()
	}

	c.history.Append(c.surface.SnapshotPixels())
	c.dispatchHistory()
	c.eventManager.Dispatch(event.TypeBackgroundChanged, event.BackgroundChangedData{Color: palette.Hex(c.state.Background)})
}

func (c *Controller) loadBackground() {
	blob, ok, err := c.store.Load(storage.KeyBackground)
	if err != nil {
		logger.Warnf("Canvas: failed to load background color: %v", err)
		return
	}
	if !ok {
		return
	}
	bg, err := palette.Parse(string(blob))
	if err != nil {
		logger.Warnf("Canvas: ignoring stored background: %v", err)
		return
	}
	c.state.Background = bg
}

func (c *Controller) loadDrawing() {
	blob, ok, err := c.store.Load(storage.KeyDrawing)
	if err != nil {
		logger.Warnf("Canvas: failed to load drawing: %v", err)
		return
	}
	if !ok {
		return
	}
	img, err := export.DecodePNG(blob)
	if err != nil {
		logger.Warnf("Canvas: ignoring stored drawing: %v", err)
		return
	}
	c.surface.RestorePixels(history.NewSnapshot(img))
	logger.Infof("Canvas: restored %dx%d drawing", img.Bounds().Dx(), img.Bounds().Dy())
}

// persist saves the current snapshot and background. Failures are logged only.
func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	if cur := c.history.Current(); cur != nil {
		blob, err := export.EncodePNG(cur.Image())
		if err != nil {
			logger.Errorf("Canvas: failed to encode drawing: %v", err)
		} else if err := c.store.Save(storage.KeyDrawing, blob); err != nil {
			logger.Errorf("Canvas: failed to save drawing: %v", err)
		}
	}
	c.persistBackground()
}

func (c *Controller) persistBackground() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(storage.KeyBackground, []byte(palette.Hex(c.state.Background))); err != nil {
		logger.Errorf("Canvas: failed to save background color: %v", err)
	}
}
