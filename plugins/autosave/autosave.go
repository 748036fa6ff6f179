// Package autosave periodically writes the persisted drawing to a PNG file.
package autosave

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave writes the flattened drawing to disk whenever it changed since the
// last write. It reads from the store, never from the live canvas.
type AutoSave struct {
	api plugin.CanvasAPI

	mutex    sync.RWMutex // guards the config fields below
	enabled  bool
	interval time.Duration
	path     string

	dirty atomic.Bool // set by canvas events on the UI loop

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// defaultPath derives "drawing-autosave.png" from the export path.
func defaultPath(exportPath string) string {
	ext := filepath.Ext(exportPath)
	return strings.TrimSuffix(exportPath, ext) + "-autosave.png"
}

// Initialize reads [plugins.autosave] and starts the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.CanvasAPI) error {
	p.api = api
	name := p.Name()

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(name, "interval"); ok {
		s, isStr := v.(string)
		d, err := time.ParseDuration(s)
		switch {
		case !isStr:
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", name, v, p.interval)
		case err != nil || d <= 0:
			logger.Warnf("%s: Invalid 'interval' config ('%s'), using default (%v)", name, s, p.interval)
		default:
			p.interval = d
		}
	}
	p.path = defaultPath(api.ExportPath())
	if v, ok := api.GetPluginConfigValue(name, "path"); ok {
		if s, isStr := v.(string); isStr && s != "" {
			p.path = s
		}
	}
	enabled, interval, path := p.enabled, p.interval, p.path
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v, Path: %s", name, enabled, interval, path)
	if !enabled {
		return nil
	}

	markDirty := func(event.Event) bool {
		p.dirty.Store(true)
		return false
	}
	api.SubscribeEvent(event.TypeHistoryChanged, markDirty)
	api.SubscribeEvent(event.TypeBackgroundChanged, markDirty)

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval)
	return nil
}

// Shutdown stops the saver loop and writes any pending change.
func (p *AutoSave) Shutdown() error {
	if p.stopChan == nil {
		return nil
	}
	close(p.stopChan)
	p.wg.Wait()
	p.stopChan = nil
	p.saveIfModified()
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified writes the stored drawing if a change was seen since the last write.
func (p *AutoSave) saveIfModified() {
	if !p.dirty.Swap(false) {
		return
	}
	p.mutex.RLock()
	path := p.path
	p.mutex.RUnlock()

	data, err := export.FromStore(p.api.Store())
	if errors.Is(err, export.ErrNoDrawing) {
		return
	}
	if err == nil {
		err = export.WriteFile(path, data)
	}
	if err != nil {
		// Retry on the next tick.
		p.dirty.Store(true)
		logger.Errorf("%s: Auto-save to '%s' failed: %v", p.Name(), path, err)
		return
	}
	logger.DebugTagf("autosave", "Wrote %d bytes to '%s'", len(data), path)
}
