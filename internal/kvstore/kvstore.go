// Package kvstore provides the string key-value storage that task and
// display-mode state persist to.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is a string key-value store. Set replaces any prior value.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Dir stores each key as a file inside a directory.
type Dir struct {
	Path string
}

// NewDir returns a Dir rooted at path. The directory is created on first write.
func NewDir(path string) (*Dir, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage dir is empty")
	}
	return &Dir{Path: filepath.Clean(path)}, nil
}

// KeyPath returns the file that holds key.
func (d *Dir) KeyPath(key string) string {
	return filepath.Join(d.Path, sanitizeKey(key))
}

// Get reads the value stored under key.
func (d *Dir) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(d.KeyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value under key. The write goes to a temp file first and is
// renamed into place, so readers never see a partial value.
func (d *Dir) Set(key, value string) error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Path, "."+sanitizeKey(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for key %s: %w", key, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close key %s: %w", key, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod key %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, d.KeyPath(key)); err != nil {
		return fmt.Errorf("replace key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (d *Dir) Delete(key string) error {
	if err := os.Remove(d.KeyPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Memory is an in-memory Storage.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// sanitizeKey maps a key to a file-safe name.
func sanitizeKey(input string) string {
	if strings.TrimSpace(input) == "" {
		return "_"
	}

	var b strings.Builder
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-' || c == '.'
		if !valid {
			b.WriteByte('_')
			continue
		}
		b.WriteByte(c)
	}

	key := strings.TrimLeft(b.String(), ".")
	if key == "" {
		return "_"
	}
	return key
}
