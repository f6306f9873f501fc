// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package repl is the interactive host of a session: a bubbletea
// program with a transcript viewport and a single-line prompt. Each
// submitted line goes through the session's command processor; the
// result or the failure message is appended to the transcript and the
// loop continues. Asynchronous notices from the session surface as
// inline alerts and as a terminal-title unread counter. The program
// quits when the session reaches the Terminated state.
package repl
