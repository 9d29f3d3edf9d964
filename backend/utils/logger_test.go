package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerFiltersByLevel(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	_, err := InitLogger(LoggerConfig{Level: "info", Output: &buf})
	require.NoError(t, err)

	Logger.Debug("debug message should be filtered")
	Logger.Info("info message should appear")

	out := buf.String()
	assert.NotContains(t, out, "debug message should be filtered")
	assert.Contains(t, out, "info message should appear")
}

func TestInitLoggerJSONFormat(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	_, err := InitLogger(LoggerConfig{Format: "json", Output: &buf})
	require.NoError(t, err)

	Logger.Info("hello", "user_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestInitLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	_, err := InitLogger(LoggerConfig{Level: "loud", Output: &buf})
	require.Error(t, err)

	Logger.Info("still logged")
	assert.Contains(t, buf.String(), "still logged")
}
