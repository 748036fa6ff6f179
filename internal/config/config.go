// Package config loads doodle's settings: defaults, then the TOML file, then flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/palette"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`
	Canvas  CanvasConfig                      `toml:"canvas"`
	Storage StorageConfig                     `toml:"storage"`
	Export  ExportConfig                      `toml:"export"`
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// CanvasConfig holds the initial drawing settings.
type CanvasConfig struct {
	BrushSize    float64 `toml:"brush_size"`
	Color        string  `toml:"color"`
	Background   string  `toml:"background"`
	HistoryDepth int     `toml:"history_depth"`
}

// StorageConfig selects where drawings persist. An empty path keeps them in memory.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ExportConfig controls PNG export and the optional download server.
type ExportConfig struct {
	Path   string `toml:"path"`
	Listen string `toml:"listen"` // e.g. "127.0.0.1:8088"; empty disables the server
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Canvas: CanvasConfig{
			BrushSize:    DefaultBrushSize,
			Color:        DefaultColor,
			Background:   DefaultBackground,
			HistoryDepth: DefaultHistoryDepth,
		},
		Storage: StorageConfig{Path: defaultDataPath(DefaultDatabaseFileName)},
		Export:  ExportConfig{Path: DefaultExportFileName},
		Plugins: map[string]map[string]interface{}{},
	}
}

func defaultDataPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, name)
}

// DefaultConfigPath returns ~/.config/doodle/config.toml, or "" if the config dir is unknown.
func DefaultConfigPath() string {
	return defaultDataPath(DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Logger may not be initialized yet; this is a no-op in that case.
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Canvas.BrushSize < MinBrushSize || c.Canvas.BrushSize > MaxBrushSize {
		c.Canvas.BrushSize = defaults.Canvas.BrushSize
	}
	if _, err := palette.Parse(c.Canvas.Color); err != nil {
		c.Canvas.Color = defaults.Canvas.Color
	}
	if _, err := palette.Parse(c.Canvas.Background); err != nil {
		c.Canvas.Background = defaults.Canvas.Background
	}
	if c.Canvas.HistoryDepth <= 0 {
		c.Canvas.HistoryDepth = defaults.Canvas.HistoryDepth
	}
	if c.Export.Path == "" {
		c.Export.Path = defaults.Export.Path
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]interface{}{}
	}
}

// Load builds a configuration from defaults, the file at configFilePath (or the
// default location when empty) and any flags that were set.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and remembers the result for Get.
// A file error is returned alongside a usable config.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginValue returns a value from the [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	section, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}
