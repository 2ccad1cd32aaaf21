package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the persisted configuration of one invocation.
//
// A Store is loaded once at start, mutated only by explicit config
// commands and flushed once at the end. Flush writes only when a
// mutation happened.
//
//	store, err := config.OpenStore(config.SettingsPath(dir))
//	store.SetFormat("flac")
//	err = store.Flush()
type Store struct {
	path     string
	settings *Settings
	dirty    bool
}

// OpenStore loads the settings at path.
func OpenStore(path string) (*Store, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, settings: settings}, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Settings returns the persisted settings. Callers must not modify the
// returned value; use ApplyEnv to derive run-time settings.
func (s *Store) Settings() *Settings {
	return s.settings
}

// SetDest sets the default destination. Relative paths are made absolute
// against the working directory and the directory is created.
func (s *Store) SetDest(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	s.settings.DefaultDestination = abs
	s.dirty = true
	return abs, nil
}

// ClearDest unsets the default destination. It reports whether a value
// was set.
func (s *Store) ClearDest() bool {
	if s.settings.DefaultDestination == "" {
		return false
	}
	s.settings.DefaultDestination = ""
	s.dirty = true
	return true
}

// SetFormat sets the default audio format.
func (s *Store) SetFormat(format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if !IsSupportedFormat(format) {
		return &ConfigError{Message: fmt.Sprintf("unsupported format %q (supported: %s)",
			format, strings.Join(SupportedFormats, ", "))}
	}

	s.settings.DefaultFormat = format
	s.dirty = true
	return nil
}

// Show returns the current values. Unset values are reported as empty
// strings.
func (s *Store) Show() (destination, format string) {
	return s.settings.DefaultDestination, s.settings.DefaultFormat
}

// Flush persists pending mutations atomically.
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}
	if err := s.settings.Save(s.path); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
