// Package termlog provides a slog-backed logger with CLI-friendly output.
// The sink is injected so callers own the lifecycle of the output stream;
// there is no package-level logger.
package termlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with convenience methods
type Logger struct {
	*slog.Logger

	sink io.Writer
}

// lineHandler formats records as "[LEVEL] message key=value, key=value"
type lineHandler struct {
	level slog.Level
	sink  io.Writer
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	switch r.Level {
	case slog.LevelDebug:
		b.WriteString("[debug] ")
	case slog.LevelWarn:
		b.WriteString("[warn] ")
	case slog.LevelError:
		b.WriteString("[error] ")
	}

	b.WriteString(r.Message)

	if r.NumAttrs() > 0 {
		first := true
		r.Attrs(func(a slog.Attr) bool {
			if first {
				b.WriteString("  ")
				first = false
			} else {
				b.WriteString(", ")
			}
			b.WriteString(a.Key)
			b.WriteString("=")
			b.WriteString(a.Value.String())
			return true
		})
	}

	b.WriteString("\n")
	_, err := h.sink.Write([]byte(b.String()))
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// persistent attrs are not needed for a CLI stream
	return h
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	return h
}

// New creates a logger writing to the given sink at the given level.
func New(level slog.Level, sink io.Writer) *Logger {
	if sink == nil {
		sink = os.Stderr
	}
	return &Logger{
		Logger: slog.New(&lineHandler{level: level, sink: sink}),
		sink:   sink,
	}
}

// NewDefault creates a logger with INFO level writing to stderr.
func NewDefault() *Logger {
	return New(slog.LevelInfo, os.Stderr)
}

// NewVerbose creates a logger with DEBUG level writing to stderr.
func NewVerbose() *Logger {
	return New(slog.LevelDebug, os.Stderr)
}

// Sink returns the writer this logger was constructed with. Components
// that echo raw subprocess output reuse it so everything lands on one
// visible stream.
func (l *Logger) Sink() io.Writer {
	return l.sink
}

// Printf writes directly to the sink, bypassing level filtering. Used
// for user-facing output that is not a log line.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.sink, format, args...)
}

// Fatal logs at ERROR level and exits with code 1
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}
