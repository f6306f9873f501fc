// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/parley-im/parley/session"
)

const defaultListLimit = 20

// listThreads handles `threads [n]`: a fresh backend fetch of the most
// recent inbox threads, cached and rendered newest first.
func listThreads(ctx context.Context, line string, s *session.Session) (string, error) {
	limit, err := parseLimit(arguments(line), defaultListLimit)
	if err != nil {
		return "", err
	}

	threads, err := s.Backend().ThreadList(ctx, limit, "", []string{"inbox"})
	if err != nil {
		return "", fmt.Errorf("listing threads: %w", err)
	}
	if len(threads) == 0 {
		return "no threads", nil
	}
	for _, thread := range threads {
		s.CacheThread(thread)
	}
	return renderThreads(threads), nil
}

// recentThreads handles `recent [n]`: the cache snapshot, no backend
// traffic.
func recentThreads(ctx context.Context, line string, s *session.Session) (string, error) {
	limit, err := parseLimit(arguments(line), defaultListLimit)
	if err != nil {
		return "", err
	}

	threads := s.Cache().Threads()
	if len(threads) == 0 {
		return "no cached threads — try `threads` first", nil
	}
	if len(threads) > limit {
		threads = threads[:limit]
	}
	return renderThreads(threads), nil
}

// listContacts handles `contacts`: the immutable friends snapshot
// captured at login.
func listContacts(ctx context.Context, line string, s *session.Session) (string, error) {
	friends := s.User().Friends
	if len(friends) == 0 {
		return "no contacts", nil
	}

	var b strings.Builder
	for _, friend := range friends {
		fmt.Fprintf(&b, "%s  (%s)\n", friend.FullName, friend.UserID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// threadHistory handles `history <target> [n]`.
func threadHistory(ctx context.Context, line string, s *session.Session) (string, error) {
	target, rest, err := splitTarget(arguments(line))
	if err != nil {
		return "", fmt.Errorf("usage: %s: %w", usage["history"], err)
	}
	limit, err := parseLimit(rest, defaultListLimit)
	if err != nil {
		return "", err
	}

	thread, err := s.ThreadByName(ctx, target)
	if err != nil {
		return "", err
	}

	messages, err := s.Backend().ThreadHistory(ctx, thread.ID, limit)
	if err != nil {
		return "", fmt.Errorf("history of %s: %w", label(thread), err)
	}
	if len(messages) == 0 {
		return fmt.Sprintf("%s: no messages", label(thread)), nil
	}
	return renderHistory(thread, messages), nil
}
