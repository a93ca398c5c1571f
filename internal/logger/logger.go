// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is the shared logger. It writes warnings to stderr until Init runs.
var Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var sinkFile *os.File

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Init replaces Log. sink is "stderr" (default), "stdout" or "file:<path>".
// Command output goes to stdout, so logs default to stderr.
func Init(level, sink string) error {
	var w io.Writer = os.Stderr
	switch {
	case sink == "" || sink == "stderr":
		Close()
	case sink == "stdout":
		Close()
		w = os.Stdout
	case strings.HasPrefix(sink, "file:"):
		path := strings.TrimPrefix(sink, "file:")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", path, err)
		}
		Close()
		sinkFile = f
		w = f
	default:
		return fmt.Errorf("invalid log sink %q (use stderr, stdout or file:<path>)", sink)
	}
	Log = New(w, level)
	return nil
}

// Close releases a file sink opened by Init.
func Close() {
	if sinkFile != nil {
		sinkFile.Close()
		sinkFile = nil
	}
}
