package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		override string
		want     zapcore.Level
	}{
		{"", "", zapcore.InfoLevel},
		{"debug", "", zapcore.DebugLevel},
		{"warning", "", zapcore.WarnLevel},
		{"info", "error", zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		l, err := New(config.LoggingSettings{Level: tc.level, Format: "json"}, tc.override)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tc.want))
		if tc.want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(tc.want-1))
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LoggingSettings{Level: "chatty"}, "")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(config.LoggingSettings{Format: "xml"}, "")
	assert.ErrorContains(t, err, "invalid log format")
}

func TestNew_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "invsim.log")
	l, err := New(config.LoggingSettings{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestEngineLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var logger calculation.Logger = NewEngineLogger(zap.New(core))

	logger.Debugf("d %d", 1)
	logger.Infof("i %s", "x")
	logger.Warnf("w")
	logger.Errorf("e")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "d 1", entries[0].Message)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
