package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/aidanlsb/hdate/internal/config"
)

// parseLevel maps a [log] level to slog. Empty and unknown values mean warn.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogHandler builds the stderr handler. --debug forces debug level.
func newLogHandler(w io.Writer, lc config.LogConfig, debug bool) slog.Handler {
	level := parseLevel(lc.Level)
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(strings.TrimSpace(lc.Format)) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func setupLogging(w io.Writer, lc config.LogConfig, debug bool) {
	slog.SetDefault(slog.New(newLogHandler(w, lc, debug)))
}
