// Package logger builds the structured logger used by the apiroutes CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format represents the log output format.
type Format string

// Log format constants.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a flag value to a Format. An empty value selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid log format: %s (must be text or json)", s)
	}
}

// New creates a logger writing to w. Verbose lowers the level to debug;
// otherwise only warnings and errors are logged.
func New(w io.Writer, format Format, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(verbose)}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Level returns the minimum level for the given verbosity.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
