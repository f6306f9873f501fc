// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/parley-im/parley/session"
)

// NewRegistry returns the full verb map wired into a session at
// construction. The dispatcher requires at least "m" and "unlock" for
// the lock shorthand; everything else is ordinary.
func NewRegistry() session.Registry {
	return session.Registry{
		"m":        sendMessage,
		"r":        replyLast,
		"threads":  listThreads,
		"recent":   recentThreads,
		"contacts": listContacts,
		"history":  threadHistory,
		"color":    setColor,
		"read":     markRead,
		"lock":     lockTarget,
		"unlock":   unlockTarget,
		"help":     showHelp,
		"logout":   logout,
	}
}

// usage lines shown by help, keyed by verb.
var usage = map[string]string{
	"m":        `m <target> <message>    send a message ("quote targets with spaces")`,
	"r":        "r <message>             reply to the most recent thread",
	"threads":  "threads [n]             fetch and list the n most recent threads",
	"recent":   "recent [n]              list cached threads, most recent first",
	"contacts": "contacts                list the friends directory",
	"history":  "history <target> [n]    show recent messages of a thread",
	"color":    "color <target> <color>  set a thread's display color",
	"read":     "read <target>           mark a thread as read",
	"lock":     "lock <target>           pin a target; plain lines become messages to it",
	"unlock":   "unlock                  release the pinned target",
	"help":     "help                    show this text",
	"logout":   "logout                  log out and end the session",
}

func showHelp(ctx context.Context, line string, s *session.Session) (string, error) {
	verbs := make([]string, 0, len(usage))
	for verb := range usage {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)

	var b strings.Builder
	for _, verb := range verbs {
		b.WriteString(usage[verb])
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func logout(ctx context.Context, line string, s *session.Session) (string, error) {
	if err := s.Terminate(ctx); err != nil {
		return "", err
	}
	return "logged out", nil
}
