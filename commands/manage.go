// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/parley-im/parley/session"
)

// setColor handles `color <target> <color>`. The color string is a
// backend-defined display attribute and passes through unvalidated.
func setColor(ctx context.Context, line string, s *session.Session) (string, error) {
	target, color, err := splitTarget(arguments(line))
	if err != nil || color == "" {
		return "", fmt.Errorf("usage: %s", usage["color"])
	}

	thread, err := s.ThreadByName(ctx, target)
	if err != nil {
		return "", err
	}
	if err := s.Backend().SetThreadColor(ctx, thread.ID, color); err != nil {
		return "", fmt.Errorf("setting color of %s: %w", label(thread), err)
	}

	thread.Color = color
	s.CacheThread(thread)
	return fmt.Sprintf("%s is now %s", label(thread), color), nil
}

// markRead handles `read <target>`.
func markRead(ctx context.Context, line string, s *session.Session) (string, error) {
	target, _, err := splitTarget(arguments(line))
	if err != nil {
		return "", fmt.Errorf("usage: %s", usage["read"])
	}

	thread, err := s.ThreadByName(ctx, target)
	if err != nil {
		return "", err
	}
	if err := s.Backend().MarkRead(ctx, thread.ID); err != nil {
		return "", fmt.Errorf("marking %s read: %w", label(thread), err)
	}

	thread.UnreadCount = 0
	s.CacheThread(thread)
	return fmt.Sprintf("%s marked read", label(thread)), nil
}

// lockTarget handles `lock <target>`: the target is resolved up front
// so a typo fails here instead of on every subsequent line, and the
// resolved display name is what gets pinned.
func lockTarget(ctx context.Context, line string, s *session.Session) (string, error) {
	target, _, err := splitTarget(arguments(line))
	if err != nil {
		return "", fmt.Errorf("usage: %s", usage["lock"])
	}

	thread, err := s.ThreadByName(ctx, target)
	if err != nil {
		return "", err
	}

	s.Lock().Set(label(thread))
	return fmt.Sprintf("locked to %s — plain lines are now messages; `unlock` to release", label(thread)), nil
}

// unlockTarget handles `unlock`.
func unlockTarget(ctx context.Context, line string, s *session.Session) (string, error) {
	if _, pinned := s.Lock().Target(); !pinned {
		return "no target locked", nil
	}
	s.Lock().Clear()
	return "lock released", nil
}
