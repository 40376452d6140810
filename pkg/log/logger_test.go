package log_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/afawcett/flowextensions/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func logEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	return entry
}

func TestNew(t *testing.T) {
	data := captureStdout(t, func() {
		logger := log.New("flowextensions", "test", "0.1.0")
		logger.Info("flow invoked", log.Flow("send-welcome"))
	})

	entry := logEntry(t, data)
	assert.Equal(t, "flowextensions", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "0.1.0", entry["version"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "flow invoked", entry["msg"])
	assert.Equal(t, "send-welcome", entry["flow"])
}

func TestNewSuppressesDebug(t *testing.T) {
	data := captureStdout(t, func() {
		logger := log.New("flowextensions", "test", "0.1.0")
		logger.Debug("not shown")
	})

	assert.Empty(t, data)
}

func TestNewWithLevel(t *testing.T) {
	data := captureStdout(t, func() {
		logger := log.NewWithLevel(
			"flowextensions", "test", "0.1.0", slog.LevelDebug,
		)
		logger.Debug("session variables read")
	})

	entry := logEntry(t, data)
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "session variables read", entry["msg"])
}
