// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logx builds the process logger and the HTTP logging middleware.
package logx

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slog"
)

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing text (or JSON) records at or above level to w.
// Debug level also records the source location.
func New(w io.Writer, level slog.Level, jsonLogs bool) *slog.Logger {
	opts := slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	}
	if jsonLogs {
		return slog.New(opts.NewJSONHandler(w))
	}
	return slog.New(opts.NewTextHandler(w))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.HandlerOptions{Level: slog.LevelError + 1}.NewTextHandler(io.Discard))
}
