package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "unknown", level: "loud", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, config.LogConfig{Format: "json", Level: "warn"})
	log := slog.New(h)
	log.Info("hidden")
	log.Warn("shown", "table", "taxa")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"table":"taxa"`)

	buf.Reset()
	h = NewHandler(&buf, config.LogConfig{Format: "text", Level: "info"})
	slog.New(h).Info("plain", "rows", 3)
	assert.Contains(t, buf.String(), "rows=3")

	buf.Reset()
	h = NewHandler(&buf, config.LogConfig{Format: "tint", Level: "info"})
	slog.New(h).Info("human", "rows", 4)
	assert.Contains(t, buf.String(), "human")
	assert.Contains(t, buf.String(), "rows=4")
	assert.NotContains(t, buf.String(), "\x1b[", "no colors outside a terminal")
	assert.NotContains(t, buf.String(), "level=")
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	WithRunID("run-1")
	slog.Info("first")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"run-1"`)

	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")
	data, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestInitError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Destination: "file"}
	err := Init(dir, cfg, false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
