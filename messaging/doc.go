// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging wraps the Parley backend's client HTTP API.
//
// The package provides two core types. [Client] is an unauthenticated
// client that handles login, returning authenticated [DirectSession]
// values. Client holds the backend base URL and HTTP transport, shared
// across all sessions derived from it.
//
// [DirectSession] wraps a Client with an access token for authenticated
// operations: the user profile with its friends snapshot, thread listing
// and lookup, message history, message sending (idempotent PUT with a
// transaction ID), thread color changes, read receipts, and logout.
//
// [EventStream] consumes the backend's long-poll /events endpoint and
// buffers delivered events so none are dropped when a single poll
// returns more than one. Transient poll failures are retried a bounded
// number of times with a short server-side timeout so the HTTP
// round-trip itself provides backoff.
//
// All API errors are returned as [*APIError] with the backend error code
// (ERR_FORBIDDEN, ERR_NOT_FOUND, etc.) and HTTP status code. [IsAPIError]
// tests for a specific code.
package messaging
