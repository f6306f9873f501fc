// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Parley
// client.
//
// Configuration is read from a single file specified by either the
// PARLEY_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). A missing file is not an error for [Load]: the
// client is fully usable with built-in defaults, and the file only
// overrides them. There is no automatic file discovery beyond the
// environment variable.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Backend, Session, Notify sections
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other Parley packages.
package config
