package logger

import (
	"io"
	"log/slog"
)

// NewSlogLogger returns a Logger writing console-format records to w.
// Tests use it to assert on log output.
func NewSlogLogger(w io.Writer, level LogLevel) Logger {
	return &moduleLogger{
		logger: slog.New(newTextHandler(w, parseLogLevel(string(level)))),
		level:  parseLogLevel(string(level)),
	}
}

// NewDiscardLogger returns a Logger that drops everything.
func NewDiscardLogger() Logger {
	return &moduleLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		level:  slog.LevelError + 1,
	}
}
