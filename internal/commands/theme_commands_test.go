package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar map[string]plugin.CommandFunc

func (f fakeRegistrar) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f[name]; ok {
		return errors.New("duplicate")
	}
	f[name] = fn
	return nil
}

type fakeThemes struct {
	current string
	names   []string
	message string
}

func (f *fakeThemes) SetTheme(name string) error {
	for _, n := range f.names {
		if n == name {
			f.current = name
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeThemes) CurrentTheme() string { return f.current }
func (f *fakeThemes) ListThemes() []string { return f.names }
func (f *fakeThemes) SetStatusMessage(format string, args ...interface{}) {
	f.message = fmt.Sprintf(format, args...)
}

func TestThemeCommands(t *testing.T) {
	reg := fakeRegistrar{}
	themes := &fakeThemes{current: "Dark", names: []string{"Dark", "Light"}}
	RegisterThemeCommands(reg, themes)
	require.Contains(t, reg, "theme")
	require.Contains(t, reg, "themes")

	require.NoError(t, reg["theme"](nil))
	assert.Equal(t, "Current theme: Dark", themes.message)

	require.NoError(t, reg["theme"]([]string{"Light"}))
	assert.Equal(t, "Light", themes.current)
	assert.Equal(t, "Theme set to: Light", themes.message)

	err := reg["theme"]([]string{"Solar"})
	assert.EqualError(t, err, "theme 'Solar' not found. Available: Dark, Light")

	require.NoError(t, reg["themes"](nil))
	assert.Equal(t, "Available themes: Dark, Light", themes.message)
}
