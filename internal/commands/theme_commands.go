// Package commands holds ":" commands that do not touch the canvas.
package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/doodle/internal/logger"
)

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(r Registrar, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.CurrentTheme())
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	if err := r.RegisterCommand("theme", themeCmdFunc); err != nil {
		logger.Warnf("Failed to register ':theme' command: %v", err)
	}
	if err := r.RegisterCommand("themes", themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register ':themes' command: %v", err)
	}
}
