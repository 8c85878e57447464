package middlewares_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/internal"
	"github.com/dmitrymomot/relay/middlewares"
)

func newLoggedContext(path string) (internal.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	return internal.NewContext(path, internal.WithContextLogger(log)), &buf
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs one line per completed request", func(t *testing.T) {
		t.Parallel()

		c, buf := newLoggedContext("/items")
		handler := middlewares.Logging()(func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		require.NoError(t, handler(c))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "request completed", entry["msg"])
		require.Equal(t, "/items", entry["path"])
		require.EqualValues(t, http.StatusOK, entry["status"])
		require.Contains(t, entry, "duration")
	})

	t.Run("logs and passes faults through", func(t *testing.T) {
		t.Parallel()

		c, buf := newLoggedContext("/broken")
		fault := internal.NewStageError("stage failed")
		handler := middlewares.Logging()(func(internal.Context) error {
			return fault
		})

		err := handler(c)
		require.ErrorIs(t, err, fault)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "request failed", entry["msg"])
		require.Equal(t, "/broken", entry["path"])
		require.Equal(t, "stage failed", entry["error"])
	})
}
