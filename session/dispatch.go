// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"strings"
)

// Handler executes one command line against the session, producing
// human-readable output or a failure. The dispatcher does not interpret
// handler-specific arguments beyond the verb token — the full
// (possibly rewritten) line is passed through.
type Handler func(ctx context.Context, line string, s *Session) (string, error)

// Registry is the fixed mapping from verb tokens to handlers. It must
// include "m" (send message) and "unlock" for the lock shorthand.
type Registry map[string]Handler

// Verbs the dispatcher itself references during lock interception.
const (
	verbSend   = "m"
	verbUnlock = "unlock"
)

// ProcessCommand is the single entry point converting one raw input
// line into an executed action. Issuing any command resets the unread
// counter (user activity implies the messages have been seen). Empty
// or whitespace-only input succeeds trivially with no handler invoked.
//
// While a lock target is pinned, every line except the literal "unlock"
// is rewritten to `m "<target>" <original line>` — the user's raw
// tokens, including whatever verb they typed, become message content.
// The literal "unlock" always escapes the lock.
//
// An unresolvable verb fails with ErrInvalidCommand; all other
// failures are whatever the handler returned, unchanged. Failures are
// values for the host to display — the session survives every outcome.
func (s *Session) ProcessCommand(ctx context.Context, line string) (string, error) {
	s.unread.Store(0)

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", nil
	}

	if s.State() == Terminated {
		return "", ErrNotListening
	}

	verb := strings.Fields(trimmed)[0]
	handler, found := s.registry[verb]

	if target, pinned := s.lock.Target(); pinned {
		if trimmed == verbUnlock {
			handler, found = s.registry[verbUnlock]
		} else {
			handler, found = s.registry[verbSend]
			trimmed = fmt.Sprintf("%s %q %s", verbSend, target, trimmed)
		}
	}

	if !found {
		return "", fmt.Errorf("%q: %w", verb, ErrInvalidCommand)
	}

	return handler(ctx, trimmed, s)
}
