package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
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

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "forms")))
		log.Info("x")
		assert.Equal(t, "forms", decode(t, buf)["svc"])
	})

	t.Run("context value extractor", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("request_id", ctxKey{}))
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "x")
		assert.Equal(t, "req-1", decode(t, buf)["request_id"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}

func TestEnvironmentPresets(t *testing.T) {
	t.Run("development is text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("dev", "forms"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production is json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "forms"), logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, "production", entry["env"])
		assert.Equal(t, "forms", entry["service"])
	})
}

func TestFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := append(logger.FromConfig(logger.Config{
		Level:   "error",
		Format:  "json",
		Env:     "development",
		Service: "forms",
	}), logger.WithOutput(buf))
	log := logger.New(opts...)

	log.Warn("dropped")
	assert.Empty(t, buf.String())
	log.Error("kept")
	assert.Equal(t, "kept", decode(t, buf)["msg"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestAttrs(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())

	assert.Equal(t, "field", logger.Field("name").Key)
	assert.Equal(t, "rule", logger.Rule("required").Key)
	assert.Equal(t, uint64(3), logger.Token(3).Value.Uint64())
	assert.Equal(t, "projects/validateName", logger.Endpoint("projects/validateName").Value.String())
	assert.Equal(t, 409, int(logger.Status(409).Value.Int64()))
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "component", logger.Component("apiclient").Key)
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	require.NotNil(t, log)
	log.Error("goes nowhere")
}

func TestNewContextHandler(t *testing.T) {
	t.Parallel()

	base := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	assert.Same(t, base, logger.NewContextHandler(base, nil), "no extractors returns the handler unchanged")

	buf := &bytes.Buffer{}
	h := logger.NewContextHandler(slog.NewJSONHandler(buf, nil), nil, func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(ctxKey{}).(string)
		return slog.String("tenant", v), ok
	})
	log := slog.New(h).WithGroup("g")

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "acme"), "x", slog.Int("n", 1))
	entry := decode(t, buf)
	group, ok := entry["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acme", group["tenant"])
	assert.EqualValues(t, 1, group["n"])
}
