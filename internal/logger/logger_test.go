package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info("dropped")
	log.Warn("kept", slog.Int("year", 1582))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, float64(1582), line["year"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}

func TestRequestScopedValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, Language(ctx))

	ctx = WithRequestID(ctx, "abc-123")
	ctx = WithLanguage(ctx, "en")
	assert.Equal(t, "abc-123", RequestID(ctx))
	assert.Equal(t, "en", Language(ctx))
}

func TestNew_AddsRequestAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json").With(slog.String("component", "api"))

	ctx := WithLanguage(WithRequestID(context.Background(), "req-1"), "es")
	log.InfoContext(ctx, "hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "es", line["lang"])
	assert.Equal(t, "api", line["component"])
}

func TestNew_NoRequestAttributesWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("plain")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "request_id")
	assert.NotContains(t, line, "lang")
}
