package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.WarnLevel,
		"verbose": zerolog.WarnLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("url", "https://example.com").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "https://example.com", entry["url"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "match")
	ctx = WithSessionID(ctx, "work")
	ctx = WithURL(ctx, "https://example.com/")
	ctx = With(ctx, map[string]any{"score": 983})

	FromContext(ctx).Info().Msg("lookup")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "match", entry["component"])
	assert.Equal(t, "work", entry["session_id"])
	assert.Equal(t, "https://example.com/", entry["url"])
	assert.InDelta(t, 983, entry["score"], 0)
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := NewWithFile(
		Config{Level: zerolog.InfoLevel, Format: "json"},
		FileConfig{Enabled: true, LogDir: dir, Filename: "test.log"},
	)
	require.NoError(t, err)

	logger.Info().Msg("to file")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewWithFile_Disabled(t *testing.T) {
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile_MissingDir(t *testing.T) {
	_, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: true})
	defer cleanup()
	assert.Error(t, err)
}
