// Package canvas implements the interaction controller: it turns pointer input
// into freehand strokes or previewed shapes and records committed results in
// the snapshot history.
package canvas

import (
	"image"
	"image/color"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/history"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/bethropolis/doodle/internal/surface"
)

// Surface is the raster the controller draws on.
type Surface interface {
	SnapshotPixels() *history.Snapshot
	RestorePixels(s *history.Snapshot)
	Clear()
	StrokeSegment(from, to surface.Point, c color.Color, width float64)
	StrokeRect(a, b surface.Point, c color.Color, width float64)
	StrokeCircle(center surface.Point, radius float64, c color.Color, width float64)
	StrokeLine(a, b surface.Point, c color.Color, width float64)
	Bounds() image.Rectangle
	Resize(width, height int)
}

// Controller owns the interaction state and the snapshot history.
// It is not safe for concurrent use; drive it from a single loop.
type Controller struct {
	surface Surface
	history *history.Manager
	state   State

	mode   Mode
	anchor surface.Point // shape anchor
	last   surface.Point // previous freehand point

	store        storage.Store  // optional
	eventManager *event.Manager // optional
}

// NewController creates a controller drawing on s with the given settings.
// A nil hist gets a default-depth history.
func NewController(s Surface, hist *history.Manager, state State) *Controller {
	if hist == nil {
		hist = history.NewManager(history.DefaultMaxHistory)
	}
	state.Size = clampSize(state.Size)
	return &Controller{
		surface: s,
		history: hist,
		state:   state,
		mode:    ModeIdle,
	}
}

// SetEventManager sets the event manager for dispatching canvas events.
func (c *Controller) SetEventManager(mgr *event.Manager) {
	c.eventManager = mgr
}

// SetStore attaches the persistence collaborator.
func (c *Controller) SetStore(store storage.Store) {
	c.store = store
}

// State returns a copy of the current drawing settings.
func (c *Controller) State() State { return c.state }

// Mode reports whether a stroke or shape is in flight.
func (c *Controller) Mode() Mode { return c.mode }

// HistoryPosition returns the history cursor and the number of retained snapshots.
func (c *Controller) HistoryPosition() (index, length int) {
	return c.history.Index(), c.history.Len()
}

// CanUndo reports whether Undo would change the canvas.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would change the canvas.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// HandleInput is the single entry point for pointer and resize events.
func (c *Controller) HandleInput(in Input) {
	switch in.Kind {
	case InputPointerDown:
		if !in.HasPos {
			logger.DebugTagf("canvas", "Ignoring pointer down without position")
			return
		}
		c.pointerDown(in.Pos)
	case InputPointerMove:
		if !in.HasPos {
			logger.DebugTagf("canvas", "Ignoring pointer move without position")
			return
		}
		c.pointerMove(in.Pos)
	case InputPointerUp, InputPointerLeave:
		c.finish()
	case InputResize:
		c.resize(in.Width, in.Height)
	default:
		logger.DebugTagf("canvas", "Ignoring input of kind %v", in.Kind)
	}
}

func (c *Controller) pointerDown(p surface.Point) {
	if c.mode != ModeIdle {
		// A release was lost; keep what is on screen.
		c.finish()
	}

	if c.state.Shape != ShapeNone {
		// The pre-shape raster is both the preview source and the undo target.
		c.history.Append(c.surface.SnapshotPixels())
		c.anchor = p
		c.mode = ModeShapePreview
		logger.DebugTagf("canvas", "Shape %v preview anchored at (%.1f, %.1f)", c.state.Shape, p.X, p.Y)
		return
	}

	if c.history.Len() == 0 {
		c.history.Append(c.surface.SnapshotPixels())
	}
	c.last = p
	c.mode = ModeFreehand
	logger.DebugTagf("canvas", "Freehand stroke started at (%.1f, %.1f)", p.X, p.Y)
}

func (c *Controller) pointerMove(p surface.Point) {
	switch c.mode {
	case ModeFreehand:
		c.surface.StrokeSegment(c.last, p, c.state.StrokeColor(), c.state.Size)
		c.last = p
	case ModeShapePreview:
		c.surface.Clear()
		c.surface.RestorePixels(c.history.Current())
		c.drawShape(c.anchor, p)
	}
}

// drawShape renders the active shape from anchor a to point b.
func (c *Controller) drawShape(a, b surface.Point) {
	col, width := c.state.StrokeColor(), c.state.Size
	switch c.state.Shape {
	case ShapeRect:
		c.surface.StrokeRect(a, b, col, width)
	case ShapeCircle:
		c.surface.StrokeCircle(a, a.Dist(b), col, width)
	case ShapeLine:
		c.surface.StrokeLine(a, b, col, width)
	}
}

// finish commits the visible raster if an action is in flight.
func (c *Controller) finish() {
	if c.mode == ModeIdle {
		return
	}
	logger.DebugTagf("canvas", "Committing %v", c.mode)
	c.mode = ModeIdle
	c.commit()
}

func (c *Controller) commit() {
	snap := c.surface.SnapshotPixels()
	c.history.Append(snap)
	c.persist()
	c.eventManager.Dispatch(event.TypeSnapshotCommitted, event.SnapshotCommittedData{
		Index: c.history.Index(),
		Len:   c.history.Len(),
		Bytes: snap.ByteSize(),
	})
	c.dispatchHistory()
}

func (c *Controller) resize(width, height int) {
	c.finish()
	c.surface.Resize(width, height)
	if cur := c.history.Current(); cur != nil {
		c.surface.RestorePixels(cur)
	}
	c.eventManager.Dispatch(event.TypeCanvasResized, event.CanvasResizedData{Bounds: c.surface.Bounds()})
}

func (c *Controller) dispatchHistory() {
	c.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		Index:   c.history.Index(),
		Len:     c.history.Len(),
		CanUndo: c.history.CanUndo(),
		CanRedo: c.history.CanRedo(),
	})
}

func (c *Controller) dispatchTool() {
	c.eventManager.Dispatch(event.TypeToolChanged, event.ToolChangedData{
		Tool:  c.state.Tool.String(),
		Shape: c.state.Shape.String(),
		Color: palette.Hex(c.state.Color),
		Size:  c.state.Size,
	})
}
