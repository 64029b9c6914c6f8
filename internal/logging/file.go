package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirPerm     = 0o755
	defaultLogFile = "tabmatch.log"
	defaultMaxSize = 10
	defaultBackups = 3
	defaultMaxAge  = 28
)

// FileConfig controls the rotated log file.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	Filename      string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	WriteToStderr bool
}

// NewWithFile creates a logger that writes to a rotated file and, when
// requested, to stderr. The returned cleanup closes the file.
// With file logging disabled the logger writes to stderr only if
// WriteToStderr is set, and is silent otherwise.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	noop := func() {}

	if !fileCfg.Enabled {
		if fileCfg.WriteToStderr {
			return New(cfg), noop, nil
		}
		return zerolog.Nop(), noop, nil
	}

	if fileCfg.LogDir == "" {
		return New(cfg), noop, fmt.Errorf("log directory cannot be empty")
	}
	if err := os.MkdirAll(fileCfg.LogDir, logDirPerm); err != nil {
		return New(cfg), noop, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(fileCfg.LogDir, valueOr(fileCfg.Filename, defaultLogFile)),
		MaxSize:    positiveOr(fileCfg.MaxSizeMB, defaultMaxSize),
		MaxBackups: positiveOr(fileCfg.MaxBackups, defaultBackups),
		MaxAge:     positiveOr(fileCfg.MaxAgeDays, defaultMaxAge),
		LocalTime:  true,
	}

	// Files never get ANSI colors.
	var out io.Writer = formatWriter(cfg, rotator, true)
	if fileCfg.WriteToStderr {
		out = zerolog.MultiLevelWriter(out, formatWriter(cfg, os.Stderr, false))
	}

	logger := zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	cleanup := func() {
		_ = rotator.Close()
	}
	return logger, cleanup, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
