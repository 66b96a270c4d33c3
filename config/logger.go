package config

import (
	"log/slog"
	"os"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger returns a slog.Logger for the given environment. Production logs
// JSON; everything else logs text. LOG_LEVEL picks the level (debug, info,
// warn, error), defaulting to info.
func NewLogger(environment string) *slog.Logger {
	level, ok := logLevels[os.Getenv("LOG_LEVEL")]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
