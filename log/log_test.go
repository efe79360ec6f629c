package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qbloch/conf"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"info", zap.InfoLevel},
		{"warn", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"", zap.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	logger, err := New(&conf.Conf{DisableStdoutLog: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNewFileLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(&conf.Conf{
		DisableStdoutLog:   true,
		EnableFileLog:      true,
		LogDir:             dir,
		LogLevel:           "debug",
		LogRotationMaxDays: 1,
	})
	require.NoError(t, err)
	logger.Info("hello", zap.Int("qubits", 2))
	require.NoError(t, logger.Sync())

	files, err := filepath.Glob(filepath.Join(dir, "qbloch-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"timestamp"`)
}

func TestNewFileLogMissingDir(t *testing.T) {
	_, err := New(&conf.Conf{
		DisableStdoutLog: true,
		EnableFileLog:    true,
		LogDir:           filepath.Join(t.TempDir(), "missing"),
	})
	assert.Error(t, err)
}

func TestSetupReplacesGlobal(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	logger, err := Setup(&conf.Conf{DisableStdoutLog: true})
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
}
