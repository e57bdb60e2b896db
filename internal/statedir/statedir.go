// Package statedir provides constants and utilities for the taskpad state directory layout.
package statedir

import "path/filepath"

const (
	// DefaultDir is the default state directory.
	DefaultDir = "~/.taskpad"

	// StorageDir is the key-value storage directory (inside the state dir).
	StorageDir = "storage"

	// ConfigFile is the user config file name (inside the state dir).
	ConfigFile = "taskpad.toml"

	// LogFile is the default log file name (inside the state dir).
	LogFile = "taskpad.log"
)

// StoragePath returns the storage directory within a state directory.
func StoragePath(stateDir string) string {
	return joinPath(stateDir, StorageDir)
}

// ConfigPath returns the config file path within a state directory.
func ConfigPath(stateDir string) string {
	return joinPath(stateDir, ConfigFile)
}

// LogPath returns the log file path within a state directory.
func LogPath(stateDir string) string {
	return joinPath(stateDir, LogFile)
}

func joinPath(stateDir, file string) string {
	if stateDir == "" {
		stateDir = "."
	}
	return filepath.Join(stateDir, file)
}
