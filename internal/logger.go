package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds the cotizador logger that writes to w.
//
// In "prod" it emits one JSON object per line with the time in RFC3339Nano,
// suitable for log shippers; any other env gets slog's text format for the
// terminal. level is one of debug, info, warn or error, in any case. An
// unknown level falls back to info and is reported through the new logger
// itself, so the warning reaches w. Every record carries app=cotizador and
// the env it was built for.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	known := parseLogLevel(level, lvl)

	var h slog.Handler
	switch env {
	case "prod":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	logger := slog.New(h).With(
		slog.String("app", "cotizador"),
		slog.String("env", env),
	)
	if !known {
		logger.Warn("Invalid log level. Using default level: info", slog.String("value", level))
	}
	return logger
}

// parseLogLevel sets lvl from text and reports whether text named a level.
func parseLogLevel(text string, lvl *slog.LevelVar) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "info":
		lvl.Set(slog.LevelInfo)
	case "warn", "warning":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
		return false
	}
	return true
}
