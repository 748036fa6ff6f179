package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/history"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/bethropolis/doodle/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	a, b   surface.Point
	radius float64
	color  color.RGBA
	width  float64
	snap   *history.Snapshot
}

// recordingSurface logs every primitive the controller issues.
type recordingSurface struct {
	bounds image.Rectangle
	calls  []call
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{bounds: image.Rect(0, 0, 20, 20)}
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func (s *recordingSurface) SnapshotPixels() *history.Snapshot {
	return history.NewSnapshot(image.NewRGBA(s.bounds))
}

func (s *recordingSurface) RestorePixels(snap *history.Snapshot) {
	s.calls = append(s.calls, call{op: "restore", snap: snap})
}

func (s *recordingSurface) Clear() { s.calls = append(s.calls, call{op: "clear"}) }

func (s *recordingSurface) StrokeSegment(from, to surface.Point, c color.Color, width float64) {
	s.calls = append(s.calls, call{op: "segment", a: from, b: to, color: rgba(c), width: width})
}

func (s *recordingSurface) StrokeRect(a, b surface.Point, c color.Color, width float64) {
	s.calls = append(s.calls, call{op: "rect", a: a, b: b, color: rgba(c), width: width})
}

func (s *recordingSurface) StrokeCircle(center surface.Point, radius float64, c color.Color, width float64) {
	s.calls = append(s.calls, call{op: "circle", a: center, radius: radius, color: rgba(c), width: width})
}

func (s *recordingSurface) StrokeLine(a, b surface.Point, c color.Color, width float64) {
	s.calls = append(s.calls, call{op: "line", a: a, b: b, color: rgba(c), width: width})
}

func (s *recordingSurface) Bounds() image.Rectangle { return s.bounds }

func (s *recordingSurface) Resize(width, height int) {
	s.bounds = image.Rect(0, 0, width, height)
	s.calls = append(s.calls, call{op: "resize"})
}

func (s *recordingSurface) ops() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.op
	}
	return out
}

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

func TestCirclePreviewScenario(t *testing.T) {
	surf := newRecordingSurface()
	c := NewController(surf, history.NewManager(10), DefaultState())
	c.SetShape(ShapeCircle)

	c.HandleInput(PointerDown(10, 10))
	assert.Equal(t, ModeShapePreview, c.Mode())
	index, length := c.HistoryPosition()
	assert.Equal(t, 0, index)
	assert.Equal(t, 1, length)
	baseline := c.history.Current()

	c.HandleInput(PointerMove(13, 14))
	require.Equal(t, []string{"clear", "restore", "circle"}, surf.ops())
	assert.Same(t, baseline, surf.calls[1].snap, "preview restores the pre-shape snapshot")
	assert.Equal(t, surface.Pt(10, 10), surf.calls[2].a)
	assert.InDelta(t, 5.0, surf.calls[2].radius, 1e-9)
	assert.Equal(t, DefaultSize, surf.calls[2].width)

	c.HandleInput(PointerUp())
	assert.Equal(t, ModeIdle, c.Mode())
	index, length = c.HistoryPosition()
	assert.Equal(t, 1, index)
	assert.Equal(t, 2, length)
	assert.Len(t, surf.calls, 3, "commit draws nothing extra")
}

func TestEraserStrokeUsesBackground(t *testing.T) {
	surf := newRecordingSurface()
	state := DefaultState()
	state.Color = red
	state.Background = white
	c := NewController(surf, nil, state)
	c.SetTool(ToolEraser)

	c.HandleInput(PointerDown(0, 0))
	c.HandleInput(PointerMove(5, 0))
	c.HandleInput(PointerMove(5, 5))
	c.HandleInput(PointerUp())

	require.Equal(t, []string{"segment", "segment"}, surf.ops())
	assert.Equal(t, surface.Pt(0, 0), surf.calls[0].a)
	assert.Equal(t, surface.Pt(5, 0), surf.calls[0].b)
	assert.Equal(t, surface.Pt(5, 0), surf.calls[1].a)
	assert.Equal(t, surface.Pt(5, 5), surf.calls[1].b)
	for _, cl := range surf.calls {
		assert.Equal(t, white, cl.color)
	}

	_, length := c.HistoryPosition()
	assert.Equal(t, 2, length, "baseline plus committed stroke")
}

func TestShapesFollowGeometryRules(t *testing.T) {
	surf := newRecordingSurface()
	c := NewController(surf, nil, DefaultState())

	c.SetShape(ShapeRect)
	c.HandleInput(PointerDown(2, 3))
	c.HandleInput(PointerMove(8, 9))
	c.HandleInput(PointerUp())

	c.SetShape(ShapeLine)
	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(4, 7))
	c.HandleInput(PointerLeave())

	var shapes []call
	for _, cl := range surf.calls {
		if cl.op == "rect" || cl.op == "line" {
			shapes = append(shapes, cl)
		}
	}
	require.Len(t, shapes, 2)
	assert.Equal(t, surface.Pt(2, 3), shapes[0].a)
	assert.Equal(t, surface.Pt(8, 9), shapes[0].b)
	assert.Equal(t, "line", shapes[1].op)
	assert.Equal(t, surface.Pt(4, 7), shapes[1].b)

	_, length := c.HistoryPosition()
	assert.Equal(t, 4, length, "each shape adds a baseline and a commit")
}

func TestShapeWithEraserUsesBackground(t *testing.T) {
	surf := newRecordingSurface()
	state := DefaultState()
	state.Background = red
	c := NewController(surf, nil, state)
	c.SetTool(ToolEraser)
	c.SetShape(ShapeRect)
	assert.Equal(t, ToolEraser, c.State().Tool, "shape keeps the tool")

	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(5, 5))

	last := surf.calls[len(surf.calls)-1]
	assert.Equal(t, "rect", last.op)
	assert.Equal(t, red, last.color)
}

func TestMalformedPointerEventsIgnored(t *testing.T) {
	surf := newRecordingSurface()
	c := NewController(surf, nil, DefaultState())

	c.HandleInput(Input{Kind: InputPointerDown})
	assert.Equal(t, ModeIdle, c.Mode())

	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(Input{Kind: InputPointerMove})
	c.HandleInput(Input{Kind: InputKind(99)})
	assert.Equal(t, ModeFreehand, c.Mode())
	assert.Empty(t, surf.calls)
}

func TestReleaseWhileIdleIsNoop(t *testing.T) {
	surf := newRecordingSurface()
	c := NewController(surf, nil, DefaultState())

	c.HandleInput(PointerUp())
	c.HandleInput(PointerLeave())
	c.HandleInput(PointerMove(3, 3))

	_, length := c.HistoryPosition()
	assert.Zero(t, length)
	assert.Empty(t, surf.calls)
}

func TestLeaveCommitsFreehand(t *testing.T) {
	c := NewController(newRecordingSurface(), nil, DefaultState())

	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(2, 2))
	c.HandleInput(PointerLeave())

	assert.Equal(t, ModeIdle, c.Mode())
	assert.True(t, c.CanUndo())
}

func TestToolChangeCommitsInFlightShape(t *testing.T) {
	c := NewController(newRecordingSurface(), nil, DefaultState())
	c.SetShape(ShapeCircle)
	c.HandleInput(PointerDown(5, 5))
	c.HandleInput(PointerMove(7, 7))

	c.SetTool(ToolPencil)

	assert.Equal(t, ModeIdle, c.Mode())
	assert.Equal(t, ShapeNone, c.State().Shape, "tool selection returns to freehand")
	_, length := c.HistoryPosition()
	assert.Equal(t, 2, length)
}

func TestSettersClampAndNormalize(t *testing.T) {
	c := NewController(newRecordingSurface(), nil, State{Size: 0})
	assert.Equal(t, MinSize, c.State().Size)

	c.SetSize(1000)
	assert.Equal(t, MaxSize, c.State().Size)

	c.SetSize(math.NaN())
	assert.Equal(t, DefaultSize, c.State().Size)
	c.SetSize(math.Inf(-1))
	assert.Equal(t, MinSize, c.State().Size)

	c = NewController(newRecordingSurface(), nil, State{Size: math.NaN()})
	assert.Equal(t, DefaultSize, c.State().Size)
	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(4, 5))
	surf := c.surface.(*recordingSurface)
	require.NotEmpty(t, surf.calls)
	assert.Equal(t, DefaultSize, surf.calls[len(surf.calls)-1].width)

	c.SetColor(color.RGBA{R: 0x10, A: 0x20})
	assert.Equal(t, uint8(0xff), c.State().Color.A)
}

func TestResizeCommitsAndRepaints(t *testing.T) {
	surf := newRecordingSurface()
	c := NewController(surf, nil, DefaultState())
	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(3, 3))
	surf.calls = nil

	c.HandleInput(Resize(40, 30))

	assert.Equal(t, ModeIdle, c.Mode())
	assert.Equal(t, []string{"resize", "restore"}, surf.ops())
	assert.Same(t, c.history.Current(), surf.calls[1].snap)
	assert.Equal(t, image.Rect(0, 0, 40, 30), surf.Bounds())
}

func TestEventsDispatched(t *testing.T) {
	bus := event.NewManager()
	seen := map[event.Type]int{}
	for _, typ := range []event.Type{event.TypeSnapshotCommitted, event.TypeHistoryChanged, event.TypeToolChanged, event.TypeCanvasReset, event.TypeBackgroundChanged} {
		bus.Subscribe(typ, func(e event.Event) bool {
			seen[e.Type]++
			return false
		})
	}

	c := NewController(newRecordingSurface(), nil, DefaultState())
	c.SetEventManager(bus)

	c.SetTool(ToolPencil)
	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerUp())
	c.Undo()
	c.ResetCanvas()
	c.SetBackgroundColor(red)

	assert.Equal(t, 1, seen[event.TypeSnapshotCommitted])
	assert.Equal(t, 3, seen[event.TypeHistoryChanged])
	assert.Equal(t, 1, seen[event.TypeToolChanged])
	assert.Equal(t, 1, seen[event.TypeCanvasReset])
	assert.Equal(t, 1, seen[event.TypeBackgroundChanged])
}

// failingStore rejects every operation.
type failingStore struct{ saves int }

var errStorage = errors.New("quota exceeded")

func (f *failingStore) Save(string, []byte) error { f.saves++; return errStorage }
func (f *failingStore) Load(string) ([]byte, bool, error) {
	return nil, false, errStorage
}
func (f *failingStore) Close() error { return nil }

func TestStorageFailuresDoNotInterrupt(t *testing.T) {
	store := &failingStore{}
	c := NewController(surface.NewRaster(10, 10), nil, DefaultState())
	c.SetStore(store)

	c.Load()
	c.HandleInput(PointerDown(1, 1))
	c.HandleInput(PointerMove(8, 8))
	c.HandleInput(PointerUp())

	assert.Positive(t, store.saves)
	index, length := c.HistoryPosition()
	assert.Equal(t, 1, index)
	assert.Equal(t, 2, length)
}

func TestPNGDecodeOfExport(t *testing.T) {
	raster := surface.NewRaster(12, 12)
	state := DefaultState()
	state.Background = red
	c := NewController(raster, nil, state)

	blob, err := c.ExportImage()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(blob))
	require.NoError(t, err)
	r, g, b, a := img.At(6, 6).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}

var _ storage.Store = (*failingStore)(nil)
