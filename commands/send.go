// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/parley-im/parley/session"
)

// sendMessage handles `m <target> <message>`. The target is resolved
// through the cache and friends directory; a friends-directory
// synthesis only enters the cache here, after the thread provably
// exists on the backend.
func sendMessage(ctx context.Context, line string, s *session.Session) (string, error) {
	target, body, err := splitTarget(arguments(line))
	if err != nil {
		return "", fmt.Errorf("usage: %s: %w", usage["m"], err)
	}
	if body == "" {
		return "", fmt.Errorf("usage: %s: empty message", usage["m"])
	}

	thread, err := s.ThreadByName(ctx, target)
	if err != nil {
		return "", err
	}
	return deliver(ctx, s, thread, body)
}

// replyLast handles `r <message>`: a send to the most recently active
// thread, set by inbound messages and prior sends.
func replyLast(ctx context.Context, line string, s *session.Session) (string, error) {
	body := arguments(line)
	if body == "" {
		return "", fmt.Errorf("usage: %s: empty message", usage["r"])
	}

	thread, ok := s.LastThread()
	if !ok {
		return "", fmt.Errorf("no recent thread to reply to")
	}
	return deliver(ctx, s, thread, body)
}

func deliver(ctx context.Context, s *session.Session, thread session.Thread, body string) (string, error) {
	if _, err := s.Backend().SendMessage(ctx, thread.ID, body); err != nil {
		return "", fmt.Errorf("sending to %s: %w", label(thread), err)
	}

	thread.LastActivityTS = time.Now().UnixMilli()
	s.CacheThread(thread)
	s.SetLastThread(thread.ID)

	return fmt.Sprintf("→ %s: %s", label(thread), body), nil
}

// label picks the human-readable identifier of a thread for output.
func label(thread session.Thread) string {
	if thread.Name != "" {
		return thread.Name
	}
	return thread.ID
}
