// internal/logutil/log.go
package logutil

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the batch logger writing to w (normally stderr). quiet drops
// everything below the error level.
func New(w io.Writer, quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	if quiet {
		level = zapcore.ErrorLevel
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "" // timestamps add noise to CLI stderr
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
