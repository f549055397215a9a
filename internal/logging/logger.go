// Package logging builds the zap logger behind Coda's debug log file.
// Logging is off unless a file is configured, and log output never reaches
// the chat terminal.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"coda/internal/config"
)

// New builds the process logger from cfg. An empty File yields a no-op
// logger, so call sites never need nil checks. The caller owns the logger
// and should Sync it on shutdown.
//
// Subsystems derive their own loggers with Named, e.g. logger.Named("session").
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
