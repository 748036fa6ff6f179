package autosave

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	events     *event.Manager
	store      storage.Store
	exportPath string
	config     map[string]interface{}
	messages   []string
}

func (f *fakeAPI) DispatchEvent(t event.Type, data interface{}) { f.events.Dispatch(t, data) }
func (f *fakeAPI) SubscribeEvent(t event.Type, h event.Handler) { f.events.Subscribe(t, h) }
func (f *fakeAPI) RegisterCommand(string, plugin.CommandFunc) error {
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}
func (f *fakeAPI) Store() storage.Store { return f.store }
func (f *fakeAPI) ExportPath() string   { return f.exportPath }
func (f *fakeAPI) GetPluginConfigValue(_ string, key string) (interface{}, bool) {
	v, ok := f.config[key]
	return v, ok
}

func storeDrawing(t *testing.T, store storage.Store) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{0xff, 0, 0, 0xff})
	blob, err := export.EncodePNG(img)
	require.NoError(t, err)
	require.NoError(t, store.Save(storage.KeyDrawing, blob))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "out/doodle-autosave.png", defaultPath("out/doodle.png"))
	assert.Equal(t, "drawing-autosave.png", defaultPath("drawing"))
}

func TestDisabledByDefault(t *testing.T) {
	api := &fakeAPI{events: event.NewManager(), store: storage.NewMemory(), exportPath: "doodle.png"}
	p := New()
	require.NoError(t, p.Initialize(api))
	assert.Nil(t, p.stopChan)
	assert.NoError(t, p.Shutdown())
}

func TestWritesOnlyWhenChanged(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "auto.png")
	api := &fakeAPI{
		events:     event.NewManager(),
		store:      storage.NewMemory(),
		exportPath: filepath.Join(dir, "doodle.png"),
		config:     map[string]interface{}{"enabled": true, "interval": "1h", "path": target},
	}
	p := New()
	require.NoError(t, p.Initialize(api))
	defer p.Shutdown()

	p.saveIfModified()
	assert.NoFileExists(t, target, "nothing changed yet")

	api.DispatchEvent(event.TypeHistoryChanged, event.HistoryChangedData{Index: 1, Len: 2})
	p.saveIfModified()
	assert.NoFileExists(t, target, "store has no drawing yet")

	storeDrawing(t, api.store)
	api.DispatchEvent(event.TypeHistoryChanged, event.HistoryChangedData{Index: 1, Len: 2})
	p.saveIfModified()
	require.FileExists(t, target)

	require.NoError(t, os.Remove(target))
	p.saveIfModified()
	assert.NoFileExists(t, target, "no change since last write")
}

func TestShutdownFlushesPendingChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "auto.png")
	api := &fakeAPI{
		events:     event.NewManager(),
		store:      storage.NewMemory(),
		exportPath: filepath.Join(dir, "doodle.png"),
		config:     map[string]interface{}{"enabled": true, "interval": "1h", "path": target},
	}
	storeDrawing(t, api.store)
	p := New()
	require.NoError(t, p.Initialize(api))

	api.DispatchEvent(event.TypeBackgroundChanged, event.BackgroundChangedData{Color: "#000000"})
	require.NoError(t, p.Shutdown())

	assert.FileExists(t, target)
}

func TestInvalidConfigFallsBack(t *testing.T) {
	api := &fakeAPI{
		events:     event.NewManager(),
		store:      storage.NewMemory(),
		exportPath: "doodle.png",
		config:     map[string]interface{}{"enabled": "yes", "interval": "-5s"},
	}
	p := New()
	require.NoError(t, p.Initialize(api))
	assert.False(t, p.enabled)
	assert.Equal(t, defaultInterval, p.interval)
	assert.Equal(t, "doodle-autosave.png", p.path)
}
