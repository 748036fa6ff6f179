package app

import (
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/bethropolis/doodle/internal/storage"
)

// Ensure appCanvasAPI implements the plugin.CanvasAPI interface.
var _ plugin.CanvasAPI = (*appCanvasAPI)(nil)

// appCanvasAPI is the plugin-facing view of the App.
type appCanvasAPI struct {
	app *App
}

func newCanvasAPI(app *App) *appCanvasAPI {
	return &appCanvasAPI{app: app}
}

// --- Event Bus ---

func (api *appCanvasAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appCanvasAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Commands ---

func (api *appCanvasAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appCanvasAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Persistence ---

func (api *appCanvasAPI) Store() storage.Store {
	return api.app.store
}

func (api *appCanvasAPI) ExportPath() string {
	return api.app.cfg.Export.Path
}

// --- Configuration ---

func (api *appCanvasAPI) GetPluginConfigValue(pluginName string, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
