package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/doodle/internal/logger"
)

// Manager holds the built-in and user themes and tracks the active one.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
}

// NewManager registers the built-in themes, loads *.toml files from dir
// (when non-empty) and activates the dark theme.
func NewManager(dir string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.register(&Dark)
	m.register(&Light)

	if dir != "" {
		if err := m.LoadThemesFromDir(dir); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", dir, err)
		}
	}
	m.activeTheme = m.themes[strings.ToLower(Dark.Name)]
	return m
}

func (m *Manager) register(t *Theme) {
	m.themes[strings.ToLower(t.Name)] = t
}

// LoadThemesFromDir loads every .toml file in dir. A missing directory is not an error.
func (m *Manager) LoadThemesFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read themes directory: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		t, err := LoadThemeFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warnf("Skipping theme file '%s': %v", entry.Name(), err)
			continue
		}
		m.register(t)
	}
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by case-insensitive name.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	t, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.activeTheme = t
	logger.Infof("Theme set to '%s'", t.Name)
	return nil
}

// ListThemes returns the theme names, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
