// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the parley
// client binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/parley/main.go and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// The package also owns the saved login session: [SavedSession] /
// [LoadSession] / [SaveSession] persist the access token at
// ~/.config/parley/session.json (mode 0600, $PARLEY_SESSION_FILE
// override) so the user authenticates once and subsequent runs are
// seamless. [ReadLoginPassword] handles interactive and file-based
// password entry.
package cli
