package util

import (
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. InitLogger must run
// before any component reads it directly.
var Logger *slog.Logger

// InitLogger installs a JSON slog handler on stdout and makes it the
// slog default so library code logs through the same sink.
func InitLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

// GetLogger lazily initializes the logger for callers that may run
// before main wiring, such as tests.
func GetLogger() *slog.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
