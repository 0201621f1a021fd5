package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger.
// In production (GLANCE_ENV=production) it uses JSON output for log
// aggregation. Otherwise it uses the human-readable text handler.
// Logs go to stderr so MCP stdio transport on stdout stays clean.
func Init() {
	env := strings.ToLower(os.Getenv("GLANCE_ENV"))

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// InitDiscard silences the global logger. Used by tests that exercise
// degradation paths and would otherwise spam warnings.
func InitDiscard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// WithCapture returns a logger with capture context fields attached.
// Use this for all logging within a single capture run.
func WithCapture(captureID string) *slog.Logger {
	return slog.With("capture_id", captureID)
}
