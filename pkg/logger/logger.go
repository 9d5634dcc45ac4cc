package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used across the client.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type zapLogger struct {
	l *zap.Logger
}

// New builds a zap-backed logger writing console lines to w.
// Debug entries are only emitted when verbose is set.
func New(w io.Writer, verbose bool) Logger {
	if w == nil {
		return NopLogger{}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zapLogger{l: zap.New(core)}
}

func (z zapLogger) fields(obj any) []zap.Field {
	if obj == nil {
		return nil
	}
	return []zap.Field{zap.Any("obj", obj)}
}

func (z zapLogger) Info(msg string, obj any)  { z.l.Info(msg, z.fields(obj)...) }
func (z zapLogger) Warn(msg string, obj any)  { z.l.Warn(msg, z.fields(obj)...) }
func (z zapLogger) Debug(msg string, obj any) { z.l.Debug(msg, z.fields(obj)...) }
func (z zapLogger) Error(msg string, obj any) { z.l.Error(msg, z.fields(obj)...) }

// Sync flushes buffered entries of zap-backed loggers.
func Sync(logger Logger) {
	if z, ok := logger.(zapLogger); ok {
		_ = z.l.Sync()
	}
}

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a compatibility helper for format-style debug logging.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
