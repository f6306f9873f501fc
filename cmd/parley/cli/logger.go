// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for the client. When stderr is
// a terminal, uses slog.TextHandler for human-readable output. When
// stderr is piped or redirected (scripts, CI), uses slog.JSONHandler
// for machine-parseable output.
//
// Callers scope the logger with context via With():
//
//	logger := cli.NewLogger(verbose).With("command", "single-shot")
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
