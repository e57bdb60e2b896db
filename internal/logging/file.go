package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxFileSize is the size past which OpenFile rotates the log file.
const MaxFileSize = 1 << 20

// FileLogger manages the append-only log file used by the interactive view.
type FileLogger struct {
	Path    string
	Session string
	file    *os.File
}

// OpenFile opens (creating if needed) the log file at path for appending.
// A file larger than MaxFileSize is first moved aside to path + ".1".
func OpenFile(path string) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := rotate(path); err != nil {
		return nil, fmt.Errorf("rotate log file: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileLogger{
		Path:    path,
		Session: sessionID(),
		file:    file,
	}, nil
}

// Writer returns the underlying log file writer.
func (f *FileLogger) Writer() *os.File {
	return f.file
}

// Close closes the log file.
func (f *FileLogger) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	return f.file.Close()
}

func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() <= MaxFileSize {
		return nil
	}
	return os.Rename(path, path+".1")
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}
