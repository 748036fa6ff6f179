package stats

import (
	"fmt"
	"testing"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	events   *event.Manager
	commands map[string]plugin.CommandFunc
	messages []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{events: event.NewManager(), commands: map[string]plugin.CommandFunc{}}
}

func (f *fakeAPI) DispatchEvent(t event.Type, data interface{}) { f.events.Dispatch(t, data) }
func (f *fakeAPI) SubscribeEvent(t event.Type, h event.Handler) { f.events.Subscribe(t, h) }
func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, exists := f.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.commands[name] = fn
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}
func (f *fakeAPI) Store() storage.Store                                    { return nil }
func (f *fakeAPI) ExportPath() string                                      { return "" }
func (f *fakeAPI) GetPluginConfigValue(string, string) (interface{}, bool) { return nil, false }

func history(api *fakeAPI, index int) {
	api.DispatchEvent(event.TypeHistoryChanged, event.HistoryChangedData{Index: index})
}

func commit(api *fakeAPI, index int) {
	api.DispatchEvent(event.TypeSnapshotCommitted, event.SnapshotCommittedData{Index: index, Bytes: 1000})
	history(api, index)
}

func TestCountsActivity(t *testing.T) {
	api := newFakeAPI()
	p := New()
	require.NoError(t, p.Initialize(api))

	commit(api, 1)
	commit(api, 2)
	history(api, 1) // undo
	history(api, 0) // undo
	history(api, 1) // redo
	api.DispatchEvent(event.TypeCanvasReset, nil)
	history(api, 0)
	api.DispatchEvent(event.TypeExported, event.ExportedData{Target: "clipboard"})

	assert.Equal(t, 2, p.Commits)
	assert.Equal(t, 2, p.Undos)
	assert.Equal(t, 1, p.Redos)
	assert.Equal(t, 1, p.Resets)
	assert.Equal(t, 1, p.Exports)
	assert.Equal(t, 2000, p.Committed)
}

func TestStatsCommand(t *testing.T) {
	api := newFakeAPI()
	p := New()
	require.NoError(t, p.Initialize(api))
	commit(api, 1)

	cmd, ok := api.commands["stats"]
	require.True(t, ok)
	require.NoError(t, cmd(nil))
	require.Len(t, api.messages, 1)
	assert.Equal(t, "Commits: 1, Undos: 0, Redos: 0, Resets: 0, Exports: 0, Captured: 1.0 kB", api.messages[0])

	assert.Error(t, New().Initialize(api), "command name is taken")
}
