package commands

import "github.com/bethropolis/doodle/internal/plugin"

// Registrar is anything commands can be registered with.
type Registrar interface {
	RegisterCommand(name string, cmdFunc plugin.CommandFunc) error
}

// ThemeAPI is what the theme commands need from the app.
type ThemeAPI interface {
	SetTheme(name string) error
	CurrentTheme() string
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}
