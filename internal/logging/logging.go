// Package logging builds the slog logger used by the docite CLI.
package logging

import (
	"io"
	"log/slog"
	"time"
)

// LevelFor maps the CLI verbosity count to a slog level:
// 0 = warn, 1 (-v) = info, 2 or more (-vv) = debug.
func LevelFor(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// New creates a text logger writing to w. It does not touch the global
// slog default, so library code only logs through the logger it is given.
func New(verbosity int, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: LevelFor(verbosity),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.DateTime))
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
