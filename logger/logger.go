// ABOUTME: Structured logging setup for the gateway using log/slog
// ABOUTME: Level and format come from LOG_LEVEL / LOG_FORMAT

package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs the process-wide slog default. LOG_LEVEL accepts debug,
// info, warn, error (default info); LOG_FORMAT accepts text or json
// (default text). Debug level also enables source locations, which the
// proxy's pass-through logging otherwise makes hard to trace.
func Init() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
