package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger_WritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer
	now := time.Date(2025, 2, 10, 15, 30, 0, 0, time.UTC)

	logger, err := initLogger("test", dir, zapcore.AddSync(&console), now)
	require.NoError(t, err)

	logger.Debug("debug only in file", zap.String("k", "v"))
	logger.Info("status changed", zap.Int64("event_id", 7))
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "status changed")
	assert.NotContains(t, console.String(), "debug only in file")

	data, err := os.ReadFile(filepath.Join(dir, "test_2025-02-10_15-30-00.log"))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "debug only in file", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := initLogger("", "", zapcore.AddSync(&bytes.Buffer{}), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = os.Stat(filepath.Join("logs", "default_2025-01-01_00-00-00.log"))
	assert.NoError(t, err)
}
