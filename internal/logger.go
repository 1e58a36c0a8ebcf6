package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds the process-wide logger. Production output is JSON with
// UTC RFC3339Nano timestamps so log shippers can parse it; everywhere else
// the text handler is easier on the eyes.
func NewLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if env != "prod" {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && len(groups) == 0 {
			a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
		}
		return a
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// parseLevel maps the LOG_LEVEL setting to a slog level. Unknown values
// fall back to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
