package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultStateDir     = "~/.taskpad"
	DefaultTasksKey     = "todos"
	DefaultThemeKey     = "todo-theme"
	DefaultTheme        = "light"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultLogTimestamp = false
)

// Config holds the full configuration for taskpad.
type Config struct {
	// State directory holding storage and the log file
	StateDir string `toml:"state_dir"`

	// Storage keys
	TasksKey string `toml:"tasks_key"`
	ThemeKey string `toml:"theme_key"`

	// Display mode used until one has been saved
	DefaultTheme string `toml:"default_theme"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"` // defaults to <state_dir>/taskpad.log
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"state_dir",
		"tasks_key",
		"theme_key",
		"default_theme",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}

// Fields returns the configurable field names with their current values, in
// a stable order.
func (c *Config) Fields() [][2]string {
	values := map[string]string{
		"state_dir":      c.StateDir,
		"tasks_key":      c.TasksKey,
		"theme_key":      c.ThemeKey,
		"default_theme":  c.DefaultTheme,
		"log_level":      c.LogLevel,
		"log_format":     c.LogFormat,
		"log_timestamps": boolString(c.LogTimestamps),
		"log_caller":     boolString(c.LogCaller),
		"log_file":       c.LogFile,
	}
	out := make([][2]string, 0, len(values))
	for _, name := range configFields() {
		out = append(out, [2]string{name, values[name]})
	}
	return out
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
