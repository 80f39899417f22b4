package prefs

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestThemeDefaultsToDark(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	if got := s.Theme(); got != ThemeDark {
		t.Errorf("theme = %s, want dark", got)
	}
}

func TestSetThemeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s := NewStore(path)

	if err := s.SetTheme(ThemeLight); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if got := s.Theme(); got != ThemeLight {
		t.Errorf("theme = %s, want light", got)
	}

	// A fresh store reading the same file sees the saved value.
	if got := NewStore(path).Theme(); got != ThemeLight {
		t.Errorf("reloaded theme = %s, want light", got)
	}
}

func TestSetThemeInvalid(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err := s.SetTheme("solarized"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("got %v, want ErrInvalidTheme", err)
	}
}
