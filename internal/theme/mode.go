// Package theme persists the light/dark display mode and builds the
// terminal styles for each mode.
package theme

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/kvstore"
)

// DefaultKey is the storage key holding the display mode.
const DefaultKey = "todo-theme"

// Mode is the display mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Valid reports whether m is light or dark.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Toggled returns the opposite mode. Anything that is not dark toggles to dark.
func (m Mode) Toggled() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode parses "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid theme %q, must be light or dark", s)
	}
	return m, nil
}

// Load reads the persisted mode. A missing or unrecognized value yields
// fallback; a storage error is returned together with fallback.
func Load(storage kvstore.Storage, key string, fallback Mode) (Mode, error) {
	if !fallback.Valid() {
		fallback = Light
	}
	value, ok, err := storage.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	m, err := ParseMode(value)
	if err != nil {
		return fallback, nil
	}
	return m, nil
}

// Save writes m under key.
func Save(storage kvstore.Storage, key string, m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid theme %q", m)
	}
	if err := storage.Set(key, string(m)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips current, writes the new mode and returns it. The new mode is
// returned even when the write fails.
func Toggle(storage kvstore.Storage, key string, current Mode) (Mode, error) {
	next := current.Toggled()
	return next, Save(storage, key, next)
}
