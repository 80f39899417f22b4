// Package prefs stores the UI theme preference. It shares nothing with
// session data and must stay that way.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalidTheme is returned when setting a theme other than dark or light.
var ErrInvalidTheme = errors.New("theme must be \"dark\" or \"light\"")

type preferences struct {
	Theme string `yaml:"theme"`
}

// Store reads and writes the preference file. Reads fall back to the dark
// default when the file is missing or unreadable.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a preference store backed by the YAML file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Theme returns the saved theme, defaulting to dark.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return ThemeDark
	}
	var p preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ThemeDark
	}
	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		return ThemeDark
	}
	return p.Theme
}

// SetTheme validates and writes the theme.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}
	data, err := yaml.Marshal(preferences{Theme: theme})
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
