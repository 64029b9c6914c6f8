// Package logging builds zerolog loggers and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp layout for interactive output.
const ConsoleTimeFormat = "15:04:05"

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.WarnLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w in the configured format.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	return zerolog.New(formatWriter(cfg, w, false)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

func formatWriter(cfg Config, w io.Writer, noColor bool) io.Writer {
	if cfg.Format == "json" {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: cfg.TimeFormat,
		NoColor:    noColor,
	}
}

// NewFromConfigValues creates a logger from the string values found in config files.
func NewFromConfigValues(level, format string) zerolog.Logger {
	return NewFromConfigValuesWithTimeFormat(level, format, time.RFC3339)
}

// NewFromConfigValuesWithTimeFormat is NewFromConfigValues with a custom timestamp layout.
func NewFromConfigValuesWithTimeFormat(level, format, timeFormat string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	cfg.TimeFormat = timeFormat
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// TABMATCH_LOG_LEVEL: trace, debug, info, warn, error (default: warn)
// TABMATCH_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()

	if level := os.Getenv("TABMATCH_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	if format := os.Getenv("TABMATCH_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}

	return New(cfg)
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
