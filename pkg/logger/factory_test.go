package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knijam/jason/pkg/logger"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")
		entry := decodeEntry(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("WARN"))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decodeEntry(t, buf)["msg"])
	})

	t.Run("debug mode", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithDebug("svc"))
		log.Debug("details")
		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=svc")
		assert.Contains(t, out, "mode=debug")
	})

	t.Run("release mode", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithDebug("svc"), logger.WithRelease(""))
		log.Debug("dropped")
		assert.Empty(t, buf.String())
		log.Info("kept")
		assert.Equal(t, "kept", decodeEntry(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decodeEntry(t, buf)["svc"])
	})

	t.Run("context values", func(t *testing.T) {
		type key string
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("request_id", key("rid")),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				return slog.String("static", "yes"), true
			}),
		)
		ctx := context.WithValue(context.Background(), key("rid"), "42")
		log.With("a", 1).WithGroup("g").InfoContext(ctx, "context msg")
		entry := decodeEntry(t, buf)
		g, ok := entry["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "42", g["request_id"])
		assert.Equal(t, "yes", g["static"])
		assert.Equal(t, float64(1), entry["a"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
