// Package log builds the process logger.
//
// Without a log file, records below Error go to stdout and errors go to
// stderr. With a log file, the console gets everything on stderr so stdout
// stays free for command output.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below Debug and additionally dumps every emitted unit.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes only the records accepted by pass to h.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// SetupLogger builds the process logger. Non-error console records go to
// stdout, or to stderr when stdout is nil. The returned closers must be
// closed on exit.
func SetupLogger(logLevel, logFile string, stdout io.Writer) (*slog.Logger, []io.Closer, error) {
	if logFile == "" {
		return NewLogger(logLevel, stdout, os.Stderr, nil), nil, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(logLevel, nil, os.Stderr, f), []io.Closer{f}, nil
}

// NewLogger wires the console and optional file handlers onto the given
// writers. A nil stdout sends every console record to stderr.
func NewLogger(logLevel string, stdout, stderr, file io.Writer) *slog.Logger {
	level := ParseLevel(logLevel)
	var handlers []slog.Handler

	if stdout != nil {
		handlers = append(handlers,
			LevelFilter{
				pass: func(l slog.Level) bool { return l < slog.LevelError },
				h:    slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level}),
			},
			LevelFilter{
				pass: func(l slog.Level) bool { return l >= slog.LevelError },
				h:    slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError}),
			})
	} else {
		handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(MultiHandler{hs: handlers})
}
