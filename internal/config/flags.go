package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/doodle/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Only flags that were actually set override the config file.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	Dump           *string

	LogLevel    *string
	LogFilePath *string

	BrushSize    *float64
	Color        *string
	Background   *string
	HistoryDepth *int
	Database     *string
	ExportPath   *string
	Listen       *string

	EnableTags   *string
	DisableTags  *string
	EnablePkgs   *string
	DisablePkgs  *string
	EnableFiles  *string
	DisableFiles *string
}

// DefineFlags registers doodle's flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.Dump = fs.String("dump", "", "Write the stored drawing as PNG to this path and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.BrushSize = fs.Float64("size", 0, "Initial brush size in pixels - Overrides config file")
	f.Color = fs.String("color", "", "Initial stroke color (#rrggbb) - Overrides config file")
	f.Background = fs.String("bg", "", "Initial background color (#rrggbb) - Overrides config file")
	f.HistoryDepth = fs.Int("history", 0, "Maximum undo depth - Overrides config file")
	f.Database = fs.String("db", "", "SQLite file the drawing persists to - Overrides config file")
	f.ExportPath = fs.String("export-path", "", "Default PNG export path - Overrides config file")
	f.Listen = fs.String("listen", "", "Serve the drawing over HTTP on this address - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
}

// ParseFlags defines and parses the process flags, returning the remaining arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(flag.CommandLine)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "size":
			if *f.BrushSize > 0 {
				cfg.Canvas.BrushSize = *f.BrushSize
			}
		case "color":
			cfg.Canvas.Color = *f.Color
		case "bg":
			cfg.Canvas.Background = *f.Background
		case "history":
			if *f.HistoryDepth > 0 {
				cfg.Canvas.HistoryDepth = *f.HistoryDepth
			}
		case "db":
			cfg.Storage.Path = *f.Database
		case "export-path":
			cfg.Export.Path = *f.ExportPath
		case "listen":
			cfg.Export.Listen = *f.Listen
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
