package config

import (
	"flag"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"dir":            "state_dir",
	"theme":          "default_theme",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-file":       "log_file",
}

// parseFlags defines the global flags on fs and parses args. Values start
// from cfg, so unset flags keep the lower layers. If sources is non-nil,
// explicitly set flags are recorded.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskpad", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.StateDir, "dir", cfg.StateDir, "State directory")
	fs.StringVar(&cfg.DefaultTheme, "theme", cfg.DefaultTheme, "Display mode used until one is saved (light, dark)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file used by the interactive view")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
