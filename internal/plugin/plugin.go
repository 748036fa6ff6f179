package plugin

import (
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/storage"
)

// CommandFunc is the signature for ":" commands registered by plugins.
type CommandFunc func(args []string) error

// CanvasAPI is the controlled surface plugins use to interact with doodle.
// Plugins never touch the canvas controller directly; state they need comes
// from events or from the store, which is safe to read from any goroutine.
type CanvasAPI interface {
	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Persistence ---
	Store() storage.Store
	ExportPath() string

	// --- Configuration ---
	GetPluginConfigValue(pluginName string, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	Name() string

	// Initialize is called once at startup. Subscribe to events and
	// register commands here.
	Initialize(api CanvasAPI) error

	// Shutdown is called once when doodle exits.
	Shutdown() error
}
