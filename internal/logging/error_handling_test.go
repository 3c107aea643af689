package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

func TestSafeClose(t *testing.T) {
	t.Run("closes response body without logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("test response"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		SafeCloseWithLogging(resp.Body, logger, "test_operation")
		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "test_operation")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"test_operation"`)
	})

	t.Run("nil closer is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			SafeCloseWithLogging(nil, nil, "noop")
		})
	})
}
