package cli

import (
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a slog logger backed by zap, writing to w.
// Verbose mode uses zap's development encoder at Debug; otherwise JSON at
// Warn so normal runs stay quiet. The returned func flushes the core.
func newLogger(verbose bool, w io.Writer) (*slog.Logger, func()) {
	cfg := zap.NewProductionConfig()
	encoder := zapcore.NewJSONEncoder(cfg.EncoderConfig)
	level := zapcore.WarnLevel
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		encoder = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	zl := zap.New(core)
	return slog.New(zapslog.NewHandler(core)), func() { _ = zl.Sync() }
}
