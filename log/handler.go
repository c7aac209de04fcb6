package log

import (
	"context"
	"io"
	"log/slog"
)

// NewTerminalHandlerWithLevel returns a text handler writing records at or
// above lvl. Levels are printed with their aligned names (TRACE, CRIT).
func NewTerminalHandlerWithLevel(w io.Writer, lvl slog.Level, useColor bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) != 0 {
				return a
			}
			level, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			name := LevelAlignedString(level)
			if useColor {
				name = colorize(level, name)
			}
			return slog.String(slog.LevelKey, name)
		},
	}
	return slog.NewTextHandler(w, opts)
}

// NewJSONHandlerWithLevel returns a JSON handler writing records at or above lvl.
func NewJSONHandlerWithLevel(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
}

func colorize(level slog.Level, s string) string {
	var code string
	switch {
	case level >= LevelCrit:
		code = "35"
	case level >= slog.LevelError:
		code = "31"
	case level >= slog.LevelWarn:
		code = "33"
	case level >= slog.LevelInfo:
		code = "32"
	default:
		code = "36"
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, r slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, level slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}
