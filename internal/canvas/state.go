package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/bethropolis/doodle/internal/surface"
)

// Mode is the controller's interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeFreehand
	ModeShapePreview
)

func (m Mode) String() string {
	switch m {
	case ModeFreehand:
		return "freehand"
	case ModeShapePreview:
		return "preview"
	default:
		return "idle"
	}
}

// Tool selects the stroke color source.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser      // paints with the background color
)

func (t Tool) String() string {
	if t == ToolEraser {
		return "eraser"
	}
	return "pencil"
}

// ParseTool maps a tool name to a Tool.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pencil", "pen", "p":
		return ToolPencil, nil
	case "eraser", "e":
		return ToolEraser, nil
	}
	return ToolPencil, fmt.Errorf("unknown tool '%s'", name)
}

// Shape is the optional parametric shape. ShapeNone means freehand strokes.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeRect
	ShapeCircle
	ShapeLine
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	default:
		return "none"
	}
}

// ParseShape maps a shape name to a Shape; "none" and "off" select freehand.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rect", "rectangle", "r":
		return ShapeRect, nil
	case "circle", "c":
		return ShapeCircle, nil
	case "line", "l":
		return ShapeLine, nil
	case "none", "off", "":
		return ShapeNone, nil
	}
	return ShapeNone, fmt.Errorf("unknown shape '%s'", name)
}

const (
	MinSize     = 1.0
	MaxSize     = 40.0
	DefaultSize = 3.0
)

// State is the user-facing drawing settings owned by the controller.
type State struct {
	Tool       Tool
	Shape      Shape
	Color      color.RGBA
	Size       float64
	Background color.RGBA
}

// DefaultState is a black 3px pencil on white.
func DefaultState() State {
	return State{
		Tool:       ToolPencil,
		Shape:      ShapeNone,
		Color:      color.RGBA{A: 0xff},
		Size:       DefaultSize,
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// StrokeColor is the color strokes and shapes are painted with.
func (s State) StrokeColor() color.RGBA {
	if s.Tool == ToolEraser {
		return s.Background
	}
	return s.Color
}

// clampSize keeps size in [MinSize, MaxSize]; NaN becomes DefaultSize.
func clampSize(size float64) float64 {
	if math.IsNaN(size) {
		return DefaultSize
	}
	return min(max(size, MinSize), MaxSize)
}

// InputKind identifies an event fed to HandleInput.
type InputKind int

const (
	InputPointerDown InputKind = iota + 1
	InputPointerMove
	InputPointerUp
	InputPointerLeave
	InputResize
)

func (k InputKind) String() string {
	switch k {
	case InputPointerDown:
		return "down"
	case InputPointerMove:
		return "move"
	case InputPointerUp:
		return "up"
	case InputPointerLeave:
		return "leave"
	case InputResize:
		return "resize"
	}
	return "unknown"
}

// Input is a pointer or surface event in canvas coordinates.
// HasPos is false when the source event carried no coordinates.
type Input struct {
	Kind   InputKind
	Pos    surface.Point
	HasPos bool
	Width  int // InputResize only
	Height int
}

// PointerDown builds a pointer-down input at (x, y).
func PointerDown(x, y float64) Input {
	return Input{Kind: InputPointerDown, Pos: surface.Pt(x, y), HasPos: true}
}

// PointerMove builds a pointer-move input at (x, y).
func PointerMove(x, y float64) Input {
	return Input{Kind: InputPointerMove, Pos: surface.Pt(x, y), HasPos: true}
}

// PointerUp builds a pointer-up input. Release needs no position.
func PointerUp() Input { return Input{Kind: InputPointerUp} }

// PointerLeave builds a pointer-leave input.
func PointerLeave() Input { return Input{Kind: InputPointerLeave} }

// Resize builds a surface resize input.
func Resize(width, height int) Input {
	return Input{Kind: InputResize, Width: width, Height: height}
}
