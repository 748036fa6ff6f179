// Package theme holds the styles used for doodle's terminal chrome.
package theme

import (
	"strings"

	"github.com/bethropolis/doodle/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the UI.
const (
	StyleDefault       = "Default"
	StyleStatusBar     = "StatusBar"
	StyleStatusMessage = "StatusBarMessage"
	StyleStatusCommand = "StatusBarCommand"
	StyleStatusActive  = "StatusBarActive" // active tool / shape label
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to its base name
// ("StatusBar.Tool" -> "StatusBar") and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

var (
	Dark  Theme
	Light Theme
)

func init() {
	darkBar := tcell.NewHexColor(0x2a2f38)
	darkFg := tcell.NewHexColor(0xc5cdd9)
	darkAccent := tcell.NewHexColor(0xe5c07b)
	darkCommand := tcell.NewHexColor(0x98c379)

	Dark = Theme{
		Name:   "Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:       tcell.StyleDefault.Background(tcell.ColorReset).Foreground(darkFg),
			StyleStatusBar:     tcell.StyleDefault.Background(darkBar).Foreground(darkFg),
			StyleStatusMessage: tcell.StyleDefault.Background(darkBar).Foreground(darkFg).Bold(true),
			StyleStatusCommand: tcell.StyleDefault.Background(darkBar).Foreground(darkCommand).Bold(true),
			StyleStatusActive:  tcell.StyleDefault.Background(darkBar).Foreground(darkAccent).Bold(true),
		},
	}

	lightBar := tcell.NewHexColor(0xe1e4e8)
	lightFg := tcell.NewHexColor(0x24292e)
	lightAccent := tcell.NewHexColor(0x005cc5)
	lightCommand := tcell.NewHexColor(0x22863a)

	Light = Theme{
		Name:   "Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:       tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lightFg),
			StyleStatusBar:     tcell.StyleDefault.Background(lightBar).Foreground(lightFg),
			StyleStatusMessage: tcell.StyleDefault.Background(lightBar).Foreground(lightFg).Bold(true),
			StyleStatusCommand: tcell.StyleDefault.Background(lightBar).Foreground(lightCommand).Bold(true),
			StyleStatusActive:  tcell.StyleDefault.Background(lightBar).Foreground(lightAccent).Bold(true),
		},
	}
}
