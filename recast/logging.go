package recast

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the JSON logger the recast tools share. The level comes
// from LOG_LEVEL (debug|info|warn|error; default info).
func NewLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))})
	return slog.New(handler)
}

func parseLevel(level string) slog.Leveler {
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
