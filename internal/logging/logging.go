// Package logging builds the zap logger used across the simulator and adapts
// it to the calculation engine's Logger interface.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cgfgestion/investment-simulator/internal/config"
)

// New creates a zap logger from settings. A non-empty levelOverride, usually
// from the command line, takes precedence over the configured level.
func New(settings config.LoggingSettings, levelOverride string) (*zap.Logger, error) {
	level := settings.Level
	if levelOverride != "" {
		level = levelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := settings.Format
	if format == "" {
		format = "json"
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if settings.OutputFile != "" {
		if dir := filepath.Dir(settings.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		cfg.OutputPaths = []string{settings.OutputFile}
		cfg.ErrorOutputPaths = []string{settings.OutputFile}
	}

	return cfg.Build()
}

// EngineLogger adapts a zap logger to calculation.Logger.
type EngineLogger struct {
	s *zap.SugaredLogger
}

func NewEngineLogger(l *zap.Logger) EngineLogger {
	return EngineLogger{s: l.Named("engine").Sugar()}
}

func (e EngineLogger) Debugf(format string, args ...any) { e.s.Debugf(format, args...) }
func (e EngineLogger) Infof(format string, args ...any)  { e.s.Infof(format, args...) }
func (e EngineLogger) Warnf(format string, args ...any)  { e.s.Warnf(format, args...) }
func (e EngineLogger) Errorf(format string, args ...any) { e.s.Errorf(format, args...) }
