// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements the interactive client session: the
// in-memory thread cache, thread-name resolution, the lock (pinned
// target) shorthand, and the command-dispatch engine that turns one raw
// line of user input into an action against the messaging backend.
//
// [Session] is the single owner of all per-session state. It is
// constructed around a [Backend] (the remote messaging collaborator)
// and a [Registry] of verb handlers, and exposes [Session.ProcessCommand]
// as the one entry point for executing a line of input. Handlers query
// and mutate session state through [Session.CacheThread],
// [Session.ThreadByID], and [Session.ThreadByName].
//
// The REPL host is a single-threaded cooperative consumer: it awaits
// the full completion of one ProcessCommand before reading the next
// line, so commands never overlap. Asynchronous push events from the
// backend arrive on the listen goroutine and may interleave with an
// in-flight command; the thread cache is mutex-guarded and cache writes
// are idempotent, so event handlers never coordinate with the command
// loop.
//
// The session is a state machine: Unauthenticated → Authenticating →
// Listening → Terminated. The session never exits the process — on
// logout it transitions to Terminated and the host decides what to do.
package session
