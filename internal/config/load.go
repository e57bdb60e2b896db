package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskpad/internal/statedir"
	"github.com/nibzard/taskpad/internal/theme"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskpad/taskpad.toml or OS-specific config dir)
// 3. Project config file (taskpad.toml or .taskpad.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 4. Override from environment
	loadFromEnv(cfg, cws.Sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the
// file are overwritten; they are recorded with the given source.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources == nil {
		return nil
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	stateDir, err := expandPath(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("state_dir: %w", err)
	}
	if stateDir == "" {
		return fmt.Errorf("state_dir cannot be empty")
	}
	cfg.StateDir = stateDir

	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = statedir.LogPath(cfg.StateDir)
	} else if cfg.LogFile, err = expandPath(cfg.LogFile); err != nil {
		return fmt.Errorf("log_file: %w", err)
	}

	cfg.TasksKey = strings.TrimSpace(cfg.TasksKey)
	cfg.ThemeKey = strings.TrimSpace(cfg.ThemeKey)
	if cfg.TasksKey == "" || cfg.ThemeKey == "" {
		return fmt.Errorf("tasks_key and theme_key cannot be empty")
	}
	if cfg.TasksKey == cfg.ThemeKey {
		return fmt.Errorf("tasks_key and theme_key must differ (both %q)", cfg.TasksKey)
	}

	mode, err := theme.ParseMode(cfg.DefaultTheme)
	if err != nil {
		return fmt.Errorf("default_theme: %w", err)
	}
	cfg.DefaultTheme = string(mode)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if !validLogLevel(cfg.LogLevel) {
		return fmt.Errorf("log_level: unknown level %q (want debug, info, warn, error, or fatal)", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if !validLogFormat(cfg.LogFormat) {
		return fmt.Errorf("log_format: unknown format %q (want text, json, or logfmt)", cfg.LogFormat)
	}

	return nil
}

func validLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func validLogFormat(s string) bool {
	switch s {
	case "text", "json", "logfmt":
		return true
	}
	return false
}
