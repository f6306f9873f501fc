// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands provides the verb handlers of the interactive
// session: the registry returned by NewRegistry maps each verb token
// ("m", "threads", "lock", ...) to a handler invoked by the session
// dispatcher with the full command line. Handlers resolve thread names
// through the session, call the backend, and return rendered text for
// the REPL host to print.
package commands
