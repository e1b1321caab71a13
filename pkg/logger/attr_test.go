package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knijam/jason/pkg/logger"
	"github.com/knijam/jason/pkg/props"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestNamedAttrs(t *testing.T) {
	assert.Equal(t, "component", logger.Component("binder").Key)
	assert.Equal(t, "schema", logger.Schema("signup").Key)
	assert.Equal(t, "mixin", logger.Mixin("RedisMixin").Key)
	assert.Equal(t, "request_id", logger.RequestID("abc").Key)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))

	d := logger.Duration(1500 * time.Millisecond)
	assert.Equal(t, "duration", d.Key)
	assert.Equal(t, slog.KindDuration, d.Value.Kind())
	assert.Equal(t, 1500*time.Millisecond, d.Value.Duration())
}

func TestValidationErrors(t *testing.T) {
	s := props.NewSchema("s",
		props.Named("name", props.String()),
		props.Named("tags", props.Array(props.Int(), props.MinItems(2))),
	)
	_, err := s.Load(map[string]any{"tags": []any{"x"}})
	require.Error(t, err)

	attr := logger.ValidationErrors(err)
	require.Equal(t, "validation_errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 3)
	assert.Equal(t, "name", g[0].Key)
	assert.Equal(t, "tags", g[1].Key)
	assert.Equal(t, "tags[0]", g[2].Key)

	fields := g[0].Value.Group()
	assert.Equal(t, "missing", fields[0].Value.String())
	assert.Equal(t, "field is required", fields[1].Value.String())

	assert.True(t, logger.ValidationErrors(errors.New("plain")).Equal(slog.Attr{}))
	assert.True(t, logger.ValidationErrors(nil).Equal(slog.Attr{}))
}

func TestValidationErrors_SharedPath(t *testing.T) {
	inner := props.NewSchema("db", props.Named("port", props.Int()))
	s := props.NewSchema("s",
		props.Named("db", props.Nested(inner)),
		props.Named("db.port", props.Int()),
	)
	_, err := s.Load(map[string]any{
		"db":      map[string]any{"port": "x"},
		"db.port": true,
	})
	require.Error(t, err)

	g := logger.ValidationErrors(err).Value.Group()
	require.Len(t, g, 1, "one group per path")
	assert.Equal(t, "db.port", g[0].Key)

	failures := g[0].Value.Group()
	require.Len(t, failures, 2)
	assert.Equal(t, "0", failures[0].Key)
	assert.Equal(t, "1", failures[1].Key)
	assert.Equal(t, "type_mismatch", failures[1].Value.Group()[0].Value.String())
	assert.Equal(t, "must be an integer, got boolean", failures[1].Value.Group()[1].Value.String())
}
