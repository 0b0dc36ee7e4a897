package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer

	logger := New("debug", "text", &buf)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	FromContext(ctx).Debug("loaded", "groups", 2)
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "groups=2")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	New("warn", "json", &buf).Info("dropped")
	assert.Empty(t, buf.String())

	New("warn", "json", &buf).Warn("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
