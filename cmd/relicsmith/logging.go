package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// setupLogging installs the default logger: a text handler on stderr
// filtered by the verbosity flags, plus a second handler writing
// everything at debug level when logPath is set. The returned func
// closes the log file.
func setupLogging(level slog.Level, logPath string) (func(), error) {
	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if logPath == "" {
		slog.SetDefault(slog.New(console))
		return func() {}, nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logPath, err)
	}
	file := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(teeHandler{console, file}))
	return func() { f.Close() }, nil
}

// teeHandler feeds every record to both handlers, each applying its
// own level filter.
type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.a.Enabled(ctx, level) || t.b.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.a.Enabled(ctx, r.Level) {
		err = t.a.Handle(ctx, r.Clone())
	}
	if t.b.Enabled(ctx, r.Level) {
		if e := t.b.Handle(ctx, r.Clone()); err == nil {
			err = e
		}
	}
	return err
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{t.a.WithAttrs(attrs), t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{t.a.WithGroup(name), t.b.WithGroup(name)}
}
