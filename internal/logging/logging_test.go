package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColoredHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewColoredHandler(&buf, nil))

	logger.Info("optimization finished", "section", "headline", "content_length", 42)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "optimization finished")
	assert.Contains(t, out, `"headline"`)
	assert.Contains(t, out, "content_length")
	assert.Contains(t, out, "42")
}

func TestColoredHandlerHighlightsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewColoredHandler(&buf, nil))

	logger.Info("handled", "request_id", "req-123")

	out := buf.String()
	assert.Contains(t, out, "[req-123]")
	assert.NotContains(t, out, "request_id=")
}

func TestColoredHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewColoredHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-456")
	assert.Equal(t, "req-456", GetRequestID(ctx))
}
