package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}

func TestNewStructuredLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	l := NewStructuredLoggerTo(&buf, "sidenav", "v1.2.3", "warn", "json")

	l.Info("dropped")
	l.Warn("kept", "key", "value")

	var rec map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "sidenav", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "value", rec["key"])
}

func TestNewStructuredLoggerToText(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLoggerTo(&buf, "sidenav", "dev", "info", "text").Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "module=sidenav")
}

func keepDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetDefaultLogger(t *testing.T) {
	keepDefault(t)
	t.Setenv(EnvVarLogLevel, "debug")

	SetDefaultLogger("sidenav", "dev")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

func TestSetDefaultLoggerWithLevel(t *testing.T) {
	keepDefault(t)

	SetDefaultLoggerWithLevel("sidenav", "dev", "error")
	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelError))
}

func TestNewStructuredLogger(t *testing.T) {
	l := NewStructuredLogger("sidenav", "dev", "warn")
	require.NotNil(t, l)
	ctx := context.Background()
	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	assert.True(t, l.Enabled(ctx, slog.LevelWarn))
}
