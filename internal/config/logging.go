package config

import (
	"github.com/rshade/eventcarbon/internal/logging"
)

// ToLoggingConfig converts the logging section to a logging.Config.
// A configured file switches output to a file; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
	}
	if lc.File != "" {
		cfg.Output = logging.OutputFile
		cfg.File = lc.File
	}
	return cfg
}

// Debug returns the section as --debug sees it: debug level, console
// output on stderr.
func (lc LoggingConfig) Debug() LoggingConfig {
	lc.Level = "debug"
	lc.Format = logging.FormatConsole
	lc.File = ""
	return lc
}

// GetLoggingConfig returns a copy of the global logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
