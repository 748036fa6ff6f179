package event

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Canvas events
	TypeSnapshotCommitted // A stroke or shape was committed to history
	TypeHistoryChanged    // Undo, redo, reset or commit moved the history cursor
	TypeToolChanged       // Tool, shape, color or size changed
	TypeBackgroundChanged // Background color changed
	TypeCanvasReset       // Drawing cleared and history restarted
	TypeCanvasResized     // Drawing surface resized to the viewport
	TypeExported          // A PNG was written or copied

	// Raw key press forwarded to plugins
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeSnapshotCommitted: "SnapshotCommitted",
	TypeHistoryChanged:    "HistoryChanged",
	TypeToolChanged:       "ToolChanged",
	TypeBackgroundChanged: "BackgroundChanged",
	TypeCanvasReset:       "CanvasReset",
	TypeCanvasResized:     "CanvasResized",
	TypeExported:          "Exported",
	TypeKeyPressed:        "KeyPressed",
	TypeAppReady:          "AppReady",
	TypeAppQuit:           "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SnapshotCommittedData describes a freshly committed snapshot.
type SnapshotCommittedData struct {
	Index int // History cursor after the commit
	Len   int // Number of retained snapshots
	Bytes int // Pixel bytes of the new snapshot
}

// HistoryChangedData reports the history cursor after a change.
type HistoryChangedData struct {
	Index   int
	Len     int
	CanUndo bool
	CanRedo bool
}

// ToolChangedData carries the drawing settings after a change.
type ToolChangedData struct {
	Tool  string
	Shape string
	Color string
	Size  float64
}

// BackgroundChangedData carries the new background as "#rrggbb".
type BackgroundChangedData struct {
	Color string
}

// CanvasResizedData carries the new surface bounds.
type CanvasResizedData struct {
	Bounds image.Rectangle
}

// ExportedData describes a finished export.
type ExportedData struct {
	Target string // File path, or "clipboard"
	Bytes  int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
