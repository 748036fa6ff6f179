package app

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/doodle/internal/canvas"
	"github.com/bethropolis/doodle/internal/commands"
	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/dustin/go-humanize"
)

// registerAppCommands registers the built-in ":" commands.
func registerAppCommands(a *App) {
	builtins := []struct {
		name string
		fn   plugin.CommandFunc
	}{
		{"color", a.cmdColor},
		{"bg", a.cmdBackground},
		{"size", a.cmdSize},
		{"tool", a.cmdTool},
		{"shape", a.cmdShape},
		{"undo", a.cmdUndo},
		{"redo", a.cmdRedo},
		{"reset", a.cmdReset},
		{"export", a.cmdExport},
		{"copy", a.cmdCopy},
		{"quit", a.cmdQuit},
		{"q", a.cmdQuit},
		{"help", a.cmdHelp},
	}
	for _, b := range builtins {
		if err := a.canvasAPI.RegisterCommand(b.name, b.fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", b.name, err)
		}
	}
	commands.RegisterThemeCommands(a.modeHandler, a)
}

// parseColorArg accepts a hex color or a palette slot 1-9.
func parseColorArg(args []string) (color.RGBA, error) {
	if len(args) != 1 {
		return color.RGBA{}, fmt.Errorf("expected one color, e.g. #ff0000 or 1-9")
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(palette.Default) {
			return color.RGBA{}, fmt.Errorf("palette slot must be 1-%d", len(palette.Default))
		}
		return palette.Default[n-1], nil
	}
	return palette.Parse(args[0])
}

func (a *App) cmdColor(args []string) error {
	c, err := parseColorArg(args)
	if err != nil {
		return err
	}
	a.canvas.SetColor(c)
	return nil
}

func (a *App) cmdBackground(args []string) error {
	c, err := parseColorArg(args)
	if err != nil {
		return err
	}
	a.canvas.SetBackgroundColor(c)
	return nil
}

func (a *App) cmdSize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: size <%g-%g>", canvas.MinSize, canvas.MaxSize)
	}
	size, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("invalid size '%s'", args[0])
	}
	a.canvas.SetSize(size)
	return nil
}

func (a *App) cmdTool(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tool pencil|eraser")
	}
	t, err := canvas.ParseTool(args[0])
	if err != nil {
		return err
	}
	a.canvas.SetTool(t)
	return nil
}

func (a *App) cmdShape(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shape none|rect|circle|line")
	}
	s, err := canvas.ParseShape(args[0])
	if err != nil {
		return err
	}
	a.canvas.SetShape(s)
	return nil
}

func (a *App) cmdUndo([]string) error {
	if !a.canvas.Undo() {
		a.SetStatusMessage("Nothing to undo")
	}
	return nil
}

func (a *App) cmdRedo([]string) error {
	if !a.canvas.Redo() {
		a.SetStatusMessage("Nothing to redo")
	}
	return nil
}

func (a *App) cmdReset([]string) error {
	a.canvas.ResetCanvas()
	a.SetStatusMessage("Canvas cleared")
	return nil
}

// cmdExport writes the flattened drawing to the given path or the configured one.
func (a *App) cmdExport(args []string) error {
	path := a.cfg.Export.Path
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}
	data, err := a.canvas.ExportImage()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := export.WriteFile(path, data); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeExported, event.ExportedData{Target: path, Bytes: len(data)})
	a.SetStatusMessage("Exported %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return nil
}

// cmdCopy puts the drawing on the clipboard as a PNG data URL.
func (a *App) cmdCopy([]string) error {
	data, err := a.canvas.ExportImage()
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	url := export.DataURL(data)
	if err := clipboard.WriteAll(url); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	a.eventManager.Dispatch(event.TypeExported, event.ExportedData{Target: "clipboard", Bytes: len(data)})
	a.SetStatusMessage("Copied data URL (%s)", humanize.Bytes(uint64(len(url))))
	return nil
}

func (a *App) cmdQuit([]string) error {
	a.modeHandler.Quit()
	return nil
}

func (a *App) cmdHelp([]string) error {
	a.SetStatusMessage("Commands: %s", strings.Join(a.modeHandler.Commands(), " "))
	return nil
}
