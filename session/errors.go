// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "errors"

// Expected failure conditions, surfaced as values so the REPL host can
// print them and continue. Backend failures are wrapped with %w and
// carry the messaging package's *APIError underneath.
var (
	// ErrInvalidCommand is returned by ProcessCommand when the verb
	// resolves to no registered handler.
	ErrInvalidCommand = errors.New("invalid command, check your syntax")

	// ErrThreadNotFound is returned when name resolution exhausts both
	// the thread cache and the friends directory.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrFriendNotFound is returned when a nameless thread cannot be
	// given a display name from the session user or the friends
	// directory.
	ErrFriendNotFound = errors.New("friend not found")

	// ErrNotListening is returned by operations that require an
	// established session (login completed, events subscribed).
	ErrNotListening = errors.New("session is not listening")
)

// LoginError wraps a backend login failure so the host can distinguish
// it from command-level failures. The session stays Unauthenticated.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string { return "login failed: " + e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and errors.As
// to walk the full chain through the LoginError wrapper.
func (e *LoginError) Unwrap() error { return e.Err }
