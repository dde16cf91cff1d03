package config

import (
	"log/slog"
	"strings"
)

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format is json or text. Dev mode defaults to text.
	Format string `env:"LOG_FORMAT" envDefault:""`
}

// Sanitize normalises the level and picks a format.
func (l *LogConfig) Sanitize(isDev bool) {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	switch l.Level {
	case "debug", "info", "warn", "error":
	case "warning":
		l.Level = "warn"
	default:
		l.Level = "info"
	}

	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "json" && l.Format != "text" {
		if isDev {
			l.Format = "text"
		} else {
			l.Format = "json"
		}
	}
}

// SlogLevel converts Level for slog handlers.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
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
