package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(CanvasAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&fakePlugin{name: "autosave", log: &log}))
	require.NoError(t, m.Register(&fakePlugin{name: "broken", initErr: errors.New("boom"), log: &log}))
	require.NoError(t, m.Register(&fakePlugin{name: "stats", log: &log}))

	m.InitializePlugins(nil)
	m.ShutdownPlugins()

	assert.Equal(t, []string{
		"init autosave", "init broken", "init stats",
		"shutdown stats", "shutdown broken", "shutdown autosave",
	}, log)

	p, ok := m.GetPlugin("stats")
	assert.True(t, ok)
	assert.Equal(t, "stats", p.Name())
}

func TestManagerRejectsBadRegistrations(t *testing.T) {
	var log []string
	m := NewManager()
	assert.Error(t, m.Register(&fakePlugin{log: &log}))
	require.NoError(t, m.Register(&fakePlugin{name: "stats", log: &log}))
	assert.Error(t, m.Register(&fakePlugin{name: "stats", log: &log}))
}
