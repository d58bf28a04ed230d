package app

import (
	"io"
	"log/slog"
)

// newLogger builds the App's own slog.Logger over the given writer. The
// process-global logger is never touched, so parallel App instances stay
// isolated. Level names follow slog's own parsing; anything unparseable
// falls back to info (the CLI rejects bad names before they reach here).
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
