package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskpad configuration file
# Values can be overridden by TASKPAD_* environment variables or CLI flags

# State directory (supports ~ expansion and %VAR% on Windows)
state_dir = "~/.taskpad"

# Storage keys for the task collection and the display mode
tasks_key = "todos"
theme_key = "todo-theme"

# Display mode used until one has been saved: light or dark
default_theme = "light"

# Logging: debug, info, warn, error
log_level = "warn"
# text, json, or logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Log file for the interactive view (default: <state_dir>/taskpad.log)
# log_file = "~/.taskpad/taskpad.log"
`
}
