package packmat

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with packmat-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDims adds matrix dimension fields to the logger.
func (l *Logger) WithDims(rows, cols uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows, "cols", cols),
	}
}

// LogWrite logs the outcome of a matrix write.
func (l *Logger) LogWrite(rows, cols uint32, entries uint64, err error) {
	if err != nil {
		l.Error("matrix write failed",
			"rows", rows,
			"cols", cols,
			"error", err,
		)
	} else {
		l.Info("matrix written",
			"rows", rows,
			"cols", cols,
			"entries", entries,
		)
	}
}

// LogOpen logs the outcome of opening a packed matrix.
func (l *Logger) LogOpen(rows, cols uint32, entries uint64, err error) {
	if err != nil {
		l.Error("matrix open failed", "error", err)
	} else {
		l.Debug("matrix opened",
			"rows", rows,
			"cols", cols,
			"entries", entries,
		)
	}
}
