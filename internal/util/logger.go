// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Keyfold Authors

package util

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// InitLogger initializes the global logger with appropriate log level.
// Set KEYFOLD_DEBUG=1 environment variable to enable debug logging.
func InitLogger() {
	level := slog.LevelInfo // Default: only show Info, Warn, Error

	if os.Getenv("KEYFOLD_DEBUG") != "" {
		level = slog.LevelDebug
	}

	// Text handler on stderr; stdout is reserved for command output that
	// scripts consume.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time attribute for cleaner CLI output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	Logger = slog.New(handler)
}

// Debug logs a debug message (only shown when KEYFOLD_DEBUG is set)
func Debug(msg string, args ...any) {
	if Logger != nil {
		Logger.Debug(msg, args...)
	}
}
