// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "sync"

// LockState holds at most one pinned target thread name. While a target
// is pinned, the dispatcher rewrites every plain input line into a send
// to that target; the literal "unlock" command is the escape hatch.
// Setting a new target silently replaces the old one.
type LockState struct {
	mu     sync.Mutex
	target string
	pinned bool
}

// Set pins the given target name, replacing any previous one.
func (l *LockState) Set(target string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = target
	l.pinned = true
}

// Clear unpins the target.
func (l *LockState) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = ""
	l.pinned = false
}

// Target returns the pinned target name and whether one is set.
func (l *LockState) Target() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target, l.pinned
}
