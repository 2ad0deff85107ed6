package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_CreatesFiles(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
	}{
		{"existing directory", t.TempDir()},
		{"nested directory", filepath.Join(t.TempDir(), "nested", "path")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.baseDir, "session-1")
			require.NoError(t, err)
			defer logger.Close()

			assert.Equal(t, "session-1", logger.SessionID())
			assert.FileExists(t, logger.SessionPath())
			assert.FileExists(t, filepath.Join(tt.baseDir, "errors.jsonl"))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), "levels")
	require.NoError(t, err)

	require.NoError(t, logger.Debug(CategoryInput, "key", "dropped", nil))
	require.NoError(t, logger.Info(CategoryLifecycle, "start", "app started", map[string]any{"app_tick_rate": 1.0}))
	logger.SetMinLevel(LevelDebug)
	require.NoError(t, logger.Debug(CategoryInput, "key", "kept", nil))
	require.NoError(t, logger.Close())

	events, err := ReadRecentEvents(logger.SessionPath(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "start", events[0].EventType)
	assert.Equal(t, "levels", events[0].SessionID)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, "kept", events[1].Message)
}

func TestLogger_ErrorsMirrored(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, "errs")
	require.NoError(t, err)
	logger.SetMinLevel(LevelError)

	_ = logger.Warn(CategoryRender, "slow", "frame took long", nil)
	_ = logger.Error(CategoryRender, "draw_failed", "draw failed", map[string]any{"error": "boom"})
	require.NoError(t, logger.Close())

	events, err := ReadRecentEvents(filepath.Join(dir, "errors.jsonl"), -1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, LevelError, events[0].Level)
	assert.Equal(t, CategoryRender, events[0].Category)

	session, err := ReadRecentEvents(logger.SessionPath(), -1)
	require.NoError(t, err)
	assert.Len(t, session, 1)
}

func TestLogger_WritesLevelNames(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), "names")
	require.NoError(t, err)
	_ = logger.Warn(CategoryHost, "publish_failed", "", nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.SessionPath())
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "warn", raw["level"])
	assert.Equal(t, "host", raw["category"])
}

func TestReadRecentEvents_Tail(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), "tail")
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		_ = logger.Info(CategoryDispatch, name, "", nil)
	}
	require.NoError(t, logger.Close())

	f, err := os.OpenFile(logger.SessionPath(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, _ = f.WriteString("not json\n")
	require.NoError(t, f.Close())

	events, err := ReadRecentEvents(logger.SessionPath(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].EventType)
	assert.Equal(t, "c", events[1].EventType)

	_, err = ReadRecentEvents(filepath.Join(t.TempDir(), "missing.jsonl"), 1)
	assert.Error(t, err)
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	assert.NoError(t, logger.Info(CategoryHost, "noop", "", nil))
	logger.SetMinLevel(LevelDebug)
	assert.NoError(t, logger.Close())
	assert.Empty(t, logger.SessionID())
	assert.Empty(t, logger.SessionPath())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": LevelDebug, " INFO ": LevelInfo, "Warn": LevelWarn, "error": LevelError}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)

	var l Level
	assert.Error(t, l.UnmarshalText([]byte("loud")))
	assert.Equal(t, "level(9)", Level(9).String())
}
