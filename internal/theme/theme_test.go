package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallbacks(t *testing.T) {
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		StyleStatusBar: tcell.StyleDefault.Foreground(tcell.ColorBlue),
	}}

	assert.Equal(t, th.Styles[StyleStatusBar], th.GetStyle("StatusBar.Tool"))
	assert.Equal(t, th.Styles[StyleDefault], th.GetStyle("Missing"))
	assert.Equal(t, tcell.StyleDefault, (&Theme{}).GetStyle("Anything"))
}

const sampleTheme = `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#333333"

[styles.StatusBar]
bg = "#f4ecd8"
bold = true

[styles.StatusBarCommand]
fg = "nonsense"
`

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTheme), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Paper", th.Name)

	fg, _, _ := th.Styles[StyleDefault].Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x33, 0x33, 0x33), fg)

	barFg, barBg, attrs := th.Styles[StyleStatusBar].Decompose()
	assert.Equal(t, fg, barFg, "styles inherit Default")
	assert.Equal(t, tcell.NewRGBColor(0xf4, 0xec, 0xd8), barBg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, ok := th.Styles[StyleStatusCommand]
	assert.False(t, ok, "invalid styles are skipped")
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(sampleTheme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	m := NewManager(dir)
	assert.Equal(t, "Dark", m.Current().Name)
	assert.Equal(t, []string{"Dark", "Light", "Paper"}, m.ListThemes())

	require.NoError(t, m.SetTheme("paper"))
	assert.Equal(t, "Paper", m.Current().Name)
	assert.Error(t, m.SetTheme("neon"))
	assert.Equal(t, "Paper", m.Current().Name)

	assert.NotPanics(t, func() { NewManager(filepath.Join(dir, "absent")) })
}
