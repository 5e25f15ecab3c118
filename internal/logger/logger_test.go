package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realspace/realspace/internal/logger"
)

func TestNew(t *testing.T) {
	t.Run("json at debug", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := logger.New(logger.Config{Level: "debug", Format: "json", Writer: &buf})
		require.NoError(t, err)

		l.Debug("api call", "status", 200)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "api call", line["msg"])
		assert.Equal(t, float64(200), line["status"])
	})

	t.Run("text drops below level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := logger.New(logger.Config{Level: "warn", Writer: &buf})
		require.NoError(t, err)

		l.Info("quiet")
		l.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "msg=loud")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := logger.New(logger.Config{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := logger.New(logger.Config{Format: "xml"})
		assert.Error(t, err)
	})
}
