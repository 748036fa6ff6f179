package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bethropolis/doodle/internal/canvas"
	"github.com/bethropolis/doodle/internal/config"
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/history"
	"github.com/bethropolis/doodle/internal/input"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/modehandler"
	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/bethropolis/doodle/internal/statusbar"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/bethropolis/doodle/internal/surface"
	"github.com/bethropolis/doodle/internal/theme"
	"github.com/bethropolis/doodle/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of doodle.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	raster        *surface.Raster
	canvas        *canvas.Controller
	store         storage.Store
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	pointer       *input.PointerTracker
	canvasAPI     plugin.CanvasAPI
	exportServer  *export.Server // nil unless export.listen is set

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates the terminal screen and wires every component from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return newApp(cfg, screen, storage.Open(cfg.Storage.Path))
}

func newApp(cfg *config.Config, screen tcell.Screen, store storage.Store) (*App, error) {
	themeManager := theme.NewManager(themesDir())
	activeTheme := themeManager.Current()

	tuiManager, err := tui.NewWithScreen(screen, activeTheme, config.StatusBarHeight)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	state, err := initialState(cfg)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	eventManager := event.NewManager()
	raster := surface.NewRaster(tuiManager.CanvasPixels())
	ctrl := canvas.NewController(raster, history.NewManager(cfg.Canvas.HistoryDepth), state)
	ctrl.SetEventManager(eventManager)
	ctrl.SetStore(store)

	statusBar := statusbar.New(statusbar.ConfigFromTheme(activeTheme, config.MessageTimeout))
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Canvas:         ctrl,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		raster:        raster,
		canvas:        ctrl,
		store:         store,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		pointer:       input.NewPointerTracker(tuiManager.CanvasArea()),
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}
	a.canvasAPI = newCanvasAPI(a)

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChangedForStatus)
	eventManager.Subscribe(event.TypeToolChanged, a.handleDrawSettingsForStatus)
	eventManager.Subscribe(event.TypeBackgroundChanged, a.handleDrawSettingsForStatus)
	eventManager.Subscribe(event.TypeCanvasResized, a.handleCanvasResized)

	registerAppCommands(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.canvasAPI)

	ctrl.Load()
	a.syncDrawInfo()
	statusBar.SetMode(modehandler.ModeDraw.String())

	if cfg.Export.Listen != "" {
		a.exportServer = export.NewServer(cfg.Export.Listen, store)
	}
	return a, nil
}

func initialState(cfg *config.Config) (canvas.State, error) {
	state := canvas.DefaultState()
	col, err := palette.Parse(cfg.Canvas.Color)
	if err != nil {
		return state, fmt.Errorf("canvas color: %w", err)
	}
	bg, err := palette.Parse(cfg.Canvas.Background)
	if err != nil {
		return state, fmt.Errorf("canvas background: %w", err)
	}
	state.Color = col
	state.Background = bg
	state.Size = cfg.Canvas.BrushSize
	return state, nil
}

func themesDir() string {
	p := config.DefaultConfigPath()
	if p == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(p), "themes")
}

// Run starts the event pump and the main loop. It returns once a quit is requested.
// The canvas and history are only touched from this goroutine.
func (a *App) Run() error {
	defer a.shutdown()

	if a.exportServer != nil {
		a.exportServer.Start()
	}

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s %s - drag to draw | : commands | ESC quit", config.AppName, config.Version)
	a.requestRedraw()

	// Expires temporary status messages without waiting for input.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleTermEvent(ev) {
				a.draw()
			}
		case <-a.redrawRequest:
			a.draw()
		case <-ticker.C:
			a.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized.
func (a *App) pollEvents(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleTermEvent routes one screen event. It returns true if a redraw is needed.
func (a *App) handleTermEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.pointer.SetArea(a.tuiManager.CanvasArea())
		a.canvas.HandleInput(canvas.Resize(a.tuiManager.CanvasPixels()))
		return true

	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(e)

	case *tcell.EventMouse:
		in, ok := a.pointer.Translate(e)
		if !ok {
			return false
		}
		a.canvas.HandleInput(in)
		return true
	}
	return false
}

func (a *App) shutdown() {
	a.pluginManager.ShutdownPlugins()
	if a.exportServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.exportServer.Shutdown(ctx); err != nil {
			logger.Warnf("App: export server shutdown: %v", err)
		}
		cancel()
	}
	if err := a.store.Close(); err != nil {
		logger.Warnf("App: closing store: %v", err)
	}
	a.tuiManager.Close()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// SetTheme activates a theme by name and restyles the chrome.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	t := a.themeManager.Current()
	a.tuiManager.GetScreen().SetStyle(t.GetStyle(theme.StyleDefault))
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(t, config.MessageTimeout))
	a.requestRedraw()
	return nil
}

// CurrentTheme returns the active theme's name.
func (a *App) CurrentTheme() string {
	return a.themeManager.Current().Name
}

// ListThemes returns the names of the available themes.
func (a *App) ListThemes() []string {
	return a.themeManager.ListThemes()
}
