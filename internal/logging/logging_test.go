package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	logger, err := New("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestJSONEncoderUsesISO8601Timestamps(t *testing.T) {
	var buf bytes.Buffer
	logger := zap.New(zapcore.NewCore(newEncoder("json"), zapcore.AddSync(&buf), zapcore.InfoLevel))
	logger.Info("store opened", zap.String("path", "/tmp/data.json"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store opened", entry["msg"])
	assert.Equal(t, "/tmp/data.json", entry["path"])
	ts, ok := entry["ts"].(string)
	require.True(t, ok, "ts should be an ISO8601 string")
	assert.Contains(t, ts, "T")
}
