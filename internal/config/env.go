package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKPAD_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKPAD_DIR"); v != "" {
		cfg.StateDir = v
		setEnv("state_dir")
	}
	if v := os.Getenv("TASKPAD_THEME"); v != "" {
		cfg.DefaultTheme = v
		setEnv("default_theme")
	}

	// Logging configuration
	if v := os.Getenv("TASKPAD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKPAD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKPAD_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKPAD_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
	if v := os.Getenv("TASKPAD_LOG_FILE"); v != "" {
		cfg.LogFile = v
		setEnv("log_file")
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
