// Package modehandler routes key events to drawing actions or to the ":"
// command line, and owns the command registry.
package modehandler

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/bethropolis/doodle/internal/canvas"
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/input"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/bethropolis/doodle/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for keyboard input.
type InputMode int

const (
	ModeDraw InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "DRAW"
}

// Canvas is the part of the interaction controller driven from the keyboard.
type Canvas interface {
	State() canvas.State
	SetTool(t canvas.Tool)
	SetShape(s canvas.Shape)
	SetColor(c color.RGBA)
	SetSize(size float64)
	SetBackgroundColor(c color.RGBA)
	Undo() bool
	Redo() bool
	ResetCanvas()
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	canvas         Canvas
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode  InputMode
	cmdBuffer    string
	commands     map[string]plugin.CommandFunc
	resetPending bool // first 'x' seen, waiting for confirmation
	quitting     bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Canvas         Canvas
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // closed once to ask the app to exit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Canvas == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		canvas:         cfg.Canvas,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeDraw,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent processes a key in the current mode.
// It returns true if the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	switch mh.currentMode {
	case ModeDraw:
		return mh.executeAction(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	}
	logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
	return false
}

// Quit asks the app to exit. Safe to call more than once.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := strings.TrimSpace(mh.cmdBuffer)
	mh.cmdBuffer = ""
	if cmdStr == "" {
		return
	}

	parts := strings.Fields(cmdStr)
	if err := mh.RunCommand(parts[0], parts[1:]); err != nil {
		mh.statusBar.SetTemporaryMessage("%v", err)
	}
}

// RunCommand runs a registered command by name.
func (mh *ModeHandler) RunCommand(name string, args []string) error {
	cmdFunc, exists := mh.commands[name]
	if !exists {
		return fmt.Errorf("Unknown command: %s", name)
	}
	logger.DebugTagf("command", "Executing ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		return fmt.Errorf("Error executing command '%s': %w", name, err)
	}
	return nil
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmdFunc == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("command", "Registered command ':%s'", name)
	return nil
}

// Commands lists the registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, or "" outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
