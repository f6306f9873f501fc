// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// arguments strips the verb token from a command line, returning the
// remainder with surrounding whitespace removed.
func arguments(line string) string {
	trimmed := strings.TrimSpace(line)
	if i := strings.IndexFunc(trimmed, isSpace); i >= 0 {
		return strings.TrimSpace(trimmed[i:])
	}
	return ""
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// splitTarget separates a thread target from the rest of the
// arguments. Targets with spaces are written quoted (`"Bob Smith" hi`);
// bare targets end at the first whitespace. The lock rewrite produces
// quoted targets, so this must round-trip strconv.Quote output.
func splitTarget(args string) (target, rest string, err error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", "", fmt.Errorf("missing target")
	}

	if args[0] == '"' {
		quoted, after, err := cutQuoted(args)
		if err != nil {
			return "", "", err
		}
		return quoted, strings.TrimSpace(after), nil
	}

	if i := strings.IndexFunc(args, isSpace); i >= 0 {
		return args[:i], strings.TrimSpace(args[i:]), nil
	}
	return args, "", nil
}

// cutQuoted parses a leading double-quoted token, honoring the escapes
// strconv.Quote emits, and returns the unquoted value plus what follows
// the closing quote.
func cutQuoted(s string) (string, string, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			value, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", "", fmt.Errorf("malformed quoted target: %w", err)
			}
			return value, s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted target")
}

// parseLimit interprets an optional trailing count argument, falling
// back to def when absent.
func parseLimit(arg string, def int) (int, error) {
	if arg == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(arg)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive number, got %q", arg)
	}
	return limit, nil
}
