// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"strings"
)

// ThreadByID fetches a thread by exact id, consulting the cache first.
// A cache hit returns immediately with no backend call; a miss fetches
// from the backend and caches the result, so repeated calls for the
// same id become cache hits (monotonic caching).
//
// When requireName is true and the backend reports no name, a display
// name is derived: the session user's own name for the user's own
// thread, otherwise the matching friend's full name. If neither
// resolves, the call fails with ErrFriendNotFound.
func (s *Session) ThreadByID(ctx context.Context, id string, requireName bool) (Thread, error) {
	if thread, ok := s.cache.ByID(id); ok {
		return thread, nil
	}

	thread, err := s.backend.ThreadInfo(ctx, id)
	if err != nil {
		return Thread{}, fmt.Errorf("session: thread info for %q: %w", id, err)
	}

	if thread.Name == "" && requireName {
		name, ok := s.friendName(id)
		if !ok {
			return Thread{}, fmt.Errorf("session: no name for thread %q: %w", id, ErrFriendNotFound)
		}
		thread.Name = name
	}

	s.cache.Put(thread)
	return thread, nil
}

// friendName derives a display name for a user id: the session user's
// own name for their own id, otherwise the friends directory entry.
func (s *Session) friendName(id string) (string, bool) {
	user := s.User()
	if id == user.ID {
		return user.Name, true
	}
	for _, friend := range user.Friends {
		if friend.UserID == id {
			return friend.FullName, true
		}
	}
	return "", false
}

// ThreadByName resolves a user-typed, possibly partial, case-insensitive
// thread name to a concrete thread.
//
// The cached name index is scanned first (most recently active thread
// wins among prefix matches); a hit is completed through ThreadByID and,
// when the backend has no name for the thread, the typed input is
// stamped on as the display label. If the index has no match, the
// friends directory is scanned the same way and a hit synthesizes a
// minimal thread from the friend — without writing it to the cache
// (the send path caches it once the thread actually exists remotely).
// If both scans miss, the resolution fails with ErrThreadNotFound.
func (s *Session) ThreadByName(ctx context.Context, name string) (Thread, error) {
	if id, ok := s.cache.ResolveName(name); ok {
		thread, err := s.ThreadByID(ctx, id, false)
		if err != nil {
			return Thread{}, err
		}
		if thread.Name == "" {
			thread.Name = name
		}
		return thread, nil
	}

	if friend, ok := s.resolveFriend(name); ok {
		return Thread{ID: friend.UserID, Name: friend.FullName}, nil
	}

	return Thread{}, fmt.Errorf("session: resolving %q: %w", name, ErrThreadNotFound)
}

// resolveFriend scans the friends directory for a full name with the
// given case-insensitive prefix. Deterministic: the directory keeps the
// backend's snapshot order, and the first match wins.
func (s *Session) resolveFriend(name string) (Friend, bool) {
	prefix := strings.ToLower(name)
	for _, friend := range s.User().Friends {
		if strings.HasPrefix(strings.ToLower(friend.FullName), prefix) {
			return friend, true
		}
	}
	return Friend{}, false
}
