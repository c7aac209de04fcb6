package log

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"time"
)

const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12

	levelMaxVerbosity slog.Level = math.MinInt
)

// levelNames are padded to five characters so terminal output lines up.
var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelTrace, "TRACE"},
	{LevelDebug, "DEBUG"},
	{LevelInfo, "INFO "},
	{LevelWarn, "WARN "},
	{LevelError, "ERROR"},
	{LevelCrit, "CRIT "},
}

// LevelAlignedString returns the padded name of l.
func LevelAlignedString(l slog.Level) string {
	for _, n := range levelNames {
		if n.level == l {
			return n.name
		}
	}
	return "unknown level"
}

// Logger writes module tagged records to a slog.Handler. The module is
// emitted as the first attribute of every record.
type Logger interface {
	With(ctx ...any) Logger

	Trace(module string, msg string, ctx ...any)
	Debug(module string, msg string, ctx ...any)
	Info(module string, msg string, ctx ...any)
	Warn(module string, msg string, ctx ...any)
	Error(module string, msg string, ctx ...any)

	// Write logs msg at level. Records below the handler level are dropped
	// before the caller frame is resolved.
	Write(level slog.Level, module string, msg string, attrs ...any)

	Enabled(ctx context.Context, level slog.Level) bool
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return &logger{inner: slog.New(h)}
}

func (l *logger) Handler() slog.Handler { return l.inner.Handler() }

func (l *logger) With(ctx ...any) Logger { return &logger{l.inner.With(ctx...)} }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Write(level slog.Level, module string, msg string, attrs ...any) {
	l.write(4, level, module, msg, attrs)
}

// write skips runtime.Callers, write, the exported entry point and the
// package level wrapper, so the source attribute names the logging site.
func (l *logger) write(skip int, level slog.Level, module string, msg string, attrs []any) {
	ctx := context.Background()
	if !l.inner.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if module != "" {
		r.AddAttrs(slog.String("module", module))
	}
	r.Add(attrs...)
	_ = l.inner.Handler().Handle(ctx, r)
}

func (l *logger) Trace(module string, msg string, ctx ...any) {
	l.write(3, LevelTrace, module, msg, ctx)
}

func (l *logger) Debug(module string, msg string, ctx ...any) {
	l.write(3, LevelDebug, module, msg, ctx)
}

func (l *logger) Info(module string, msg string, ctx ...any) {
	l.write(3, LevelInfo, module, msg, ctx)
}

func (l *logger) Warn(module string, msg string, ctx ...any) {
	l.write(3, LevelWarn, module, msg, ctx)
}

func (l *logger) Error(module string, msg string, ctx ...any) {
	l.write(3, LevelError, module, msg, ctx)
}
