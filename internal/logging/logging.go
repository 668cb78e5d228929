package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose enables debug logging
	Verbose bool

	counts levelCounts
)

func init() {
	// Default to a simple text handler for CLI output
	Logger = slog.New(newCountingHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// Setup configures the logger based on verbosity and output preferences.
// It also resets the warning/error counters reported by Counts.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if w == nil {
		w = os.Stderr
	}

	var h slog.Handler
	if jsonOutput {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	counts.reset()
	Logger = slog.New(newCountingHandler(h))
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// Counts returns how many warning and error records were logged since the
// last Setup, regardless of whether the handler level let them through.
func Counts() (warnings, errors int) {
	return int(counts.warn.Load()), int(counts.err.Load())
}

type levelCounts struct {
	warn atomic.Int64
	err  atomic.Int64
}

func (c *levelCounts) reset() {
	c.warn.Store(0)
	c.err.Store(0)
}

// countingHandler tallies warn/error records before delegating.
type countingHandler struct {
	next slog.Handler
}

func newCountingHandler(next slog.Handler) *countingHandler {
	return &countingHandler{next: next}
}

func (h *countingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Warnings and errors are always counted, even if a custom level hides them.
	return level >= slog.LevelWarn || h.next.Enabled(ctx, level)
}

func (h *countingHandler) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		counts.err.Add(1)
	case r.Level >= slog.LevelWarn:
		counts.warn.Add(1)
	}
	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &countingHandler{next: h.next.WithAttrs(attrs)}
}

func (h *countingHandler) WithGroup(name string) slog.Handler {
	return &countingHandler{next: h.next.WithGroup(name)}
}
