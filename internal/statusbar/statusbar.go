package statusbar

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleActive    tcell.Style // tool and shape labels
	StyleMessage   tcell.Style
	StyleCommand   tcell.Style // ":" command line
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleActive:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme builds a Config from the theme's status bar styles.
func ConfigFromTheme(t *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StyleActive:    t.GetStyle(theme.StyleStatusActive),
		StyleMessage:   t.GetStyle(theme.StyleStatusMessage),
		StyleCommand:   t.GetStyle(theme.StyleStatusCommand),
		MessageTimeout: timeout,
	}
}

// DrawInfo is the drawing state summarized on the status line.
type DrawInfo struct {
	Tool       string
	Shape      string // "none" hides the shape label
	Color      color.RGBA
	Size       float64
	Background color.RGBA
}

// StatusBar represents the UI component for the status line.
// Plugins may set messages from other goroutines.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info         DrawInfo
	historyIndex int
	historyLen   int
	mode         string
	commandLine  string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, historyIndex: -1}
}

// SetConfig swaps styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetDrawInfo updates the tool, color and size shown.
func (sb *StatusBar) SetDrawInfo(info DrawInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetHistoryInfo updates the undo position shown as "index/len".
func (sb *StatusBar) SetHistoryInfo(index, length int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.historyIndex = index
	sb.historyLen = length
}

// SetMode updates the displayed input mode.
func (sb *StatusBar) SetMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.mode = mode
}

// SetCommandLine shows the command being typed; empty hides it.
func (sb *StatusBar) SetCommandLine(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandLine = text
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

type segment struct {
	text  string
	style tcell.Style
}

// segments builds the default status line. Caller holds the lock.
func (sb *StatusBar) segments() []segment {
	c := sb.config
	var segs []segment
	if sb.mode != "" {
		segs = append(segs, segment{fmt.Sprintf(" %s ", sb.mode), c.StyleActive})
	}
	segs = append(segs, segment{" " + sb.info.Tool, c.StyleActive})
	if sb.info.Shape != "" && sb.info.Shape != "none" {
		segs = append(segs, segment{" " + sb.info.Shape, c.StyleActive})
	}
	segs = append(segs,
		segment{" ", c.StyleDefault},
		segment{"■", c.StyleDefault.Foreground(palette.Tcell(sb.info.Color))},
		segment{fmt.Sprintf(" %s %gpx bg %s", palette.Hex(sb.info.Color), sb.info.Size, palette.Hex(sb.info.Background)), c.StyleDefault},
		segment{fmt.Sprintf(" | history %d/%d", sb.historyIndex+1, sb.historyLen), c.StyleDefault},
	)
	return segs
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var segs []segment
	fill := sb.config.StyleDefault
	switch {
	case sb.commandLine != "":
		fill = sb.config.StyleCommand
		segs = []segment{{sb.commandLine, fill}}
	case isTempMsgActive:
		fill = sb.config.StyleMessage
		segs = []segment{{sb.tempMessage, fill}}
	default:
		segs = sb.segments()
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, fill)
	}

	x := 0
	for _, seg := range segs {
		x = drawText(screen, x, y, width, seg.text, seg.style)
		if x >= width {
			break
		}
	}
}

// drawText draws text by grapheme cluster starting at x and returns the next column.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			return width
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
