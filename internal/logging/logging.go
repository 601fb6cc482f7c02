// Package logging provides slog-based logging for the adapter servers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Custom logging levels (compatible with slog)
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelFatal = slog.Level(12)
)

var levelNames = map[slog.Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

// LoggerFactory creates component loggers that share a writer and level.
// Everything goes to stderr by default so stdout stays free for the
// stdio transport.
type LoggerFactory struct {
	writer  io.Writer
	level   slog.Level
	handler slog.Handler
}

// NewLoggerFactory creates a factory with default settings (stderr, INFO).
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithConfig(os.Stderr, LevelInfo)
}

// NewLoggerFactoryWithConfig creates a factory with a custom writer and level.
func NewLoggerFactoryWithConfig(w io.Writer, level slog.Level) *LoggerFactory {
	if w == nil {
		w = os.Stderr
	}

	f := &LoggerFactory{writer: w, level: level}
	f.rebuildHandler()
	return f
}

// SetLevel sets the logging level for loggers created after this call.
func (f *LoggerFactory) SetLevel(level slog.Level) {
	f.level = level
	f.rebuildHandler()
}

func (f *LoggerFactory) rebuildHandler() {
	f.handler = slog.NewTextHandler(f.writer, &slog.HandlerOptions{
		Level:       f.level,
		ReplaceAttr: customizeLogLevels,
	})
}

// CreateLogger creates a logger tagged with a component name.
func (f *LoggerFactory) CreateLogger(name string) *slog.Logger {
	return slog.New(f.handler).With("component", name)
}

// ParseLevel maps a level name to its slog level. Unknown names fall
// back to INFO.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// customizeLogLevels maps the custom levels to their display names.
func customizeLogLevels(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		if name, ok := levelNames[level]; ok {
			return slog.Attr{Key: a.Key, Value: slog.StringValue(name)}
		}
	}
	return a
}

// Trace logs at trace level.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Log(context.TODO(), LevelTrace, msg, args...)
}

// Debug logs at debug level.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Debug(msg, args...)
}

// Info logs at info level.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

// Warn logs at warn level.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs at error level.
func Error(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Error(msg, args...)
}

// Fatal logs at fatal level and exits.
func Fatal(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Log(context.TODO(), LevelFatal, msg, args...)
	}
	os.Exit(1)
}
