// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend adapts the wire-level messaging client to the
// session.Backend contract: it converts wire types to session types,
// handles the two authentication paths (password login and saved-token
// resume), and pumps the long-poll event stream into the channel the
// session consumes.
package backend
