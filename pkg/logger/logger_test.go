package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/pkg/logger"
)

func extractConst(key, value string) logger.ContextExtractor {
	return func(context.Context) (slog.Attr, bool) {
		return slog.String(key, value), true
	}
}

type ctxKey struct{}

func TestWrapHandler(t *testing.T) {
	t.Parallel()

	t.Run("injects extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.WrapHandler(
			slog.NewJSONHandler(&buf, nil),
			extractConst("component", "gateway"),
		)
		log := slog.New(h)
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "gateway", entry["component"])
	})

	t.Run("extracts request-scoped values per call", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.WrapHandler(
			slog.NewJSONHandler(&buf, nil),
			func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(ctxKey{}).(string); ok {
					return slog.String("request_id", v), true
				}
				return slog.Attr{}, false
			},
		)
		log := slog.New(h)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-7")
		log.InfoContext(ctx, "with id")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "req-7", entry["request_id"])

		buf.Reset()
		log.Info("without id")
		entry = map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.NotContains(t, entry, "request_id")
	})

	t.Run("no extractors returns the handler unchanged", func(t *testing.T) {
		t.Parallel()

		base := slog.NewTextHandler(&bytes.Buffer{}, nil)
		require.Equal(t, base, logger.WrapHandler(base))
		require.Equal(t, base, logger.WrapHandler(base, nil))
	})

	t.Run("extractors survive WithAttrs and WithGroup", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.WrapHandler(
			slog.NewJSONHandler(&buf, nil),
			extractConst("trace", "t-1"),
		)
		log := slog.New(h).With("static", "s").WithGroup("grp")
		log.Info("msg", "inner", "v")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "s", entry["static"])
		require.Contains(t, entry, "grp")
	})
}

func TestFactories(t *testing.T) {
	t.Parallel()

	t.Run("nope logger discards everything", func(t *testing.T) {
		t.Parallel()

		log := logger.NewNope()
		require.NotNil(t, log)
		log.Info("dropped")
		log.Error("also dropped")
	})

	t.Run("sentry logger without DSN degrades to stdout", func(t *testing.T) {
		t.Parallel()

		log := logger.NewWithSentry(logger.SentryConfig{})
		require.NotNil(t, log)
	})

	t.Run("new accepts extractors", func(t *testing.T) {
		t.Parallel()

		log := logger.New(extractConst("k", "v"))
		require.NotNil(t, log)
	})
}
