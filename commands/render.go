// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/session"
)

var (
	faintStyle  = lipgloss.NewStyle().Faint(true)
	unreadStyle = lipgloss.NewStyle().Bold(true)
)

// nameStyle colors a thread name with the thread's own display color
// when it has one. Colors are backend-defined strings; lipgloss accepts
// ANSI indexes, hex codes, and common names, and silently ignores
// anything it cannot parse.
func nameStyle(thread session.Thread) lipgloss.Style {
	style := lipgloss.NewStyle()
	if thread.Color != "" {
		style = style.Foreground(lipgloss.Color(thread.Color))
	}
	return style
}

func renderThreads(threads []session.Thread) string {
	var b strings.Builder
	for _, thread := range threads {
		name := nameStyle(thread).Render(label(thread))

		var unread string
		if thread.UnreadCount > 0 {
			unread = " " + unreadStyle.Render(fmt.Sprintf("(%d unread)", thread.UnreadCount))
		}

		var when string
		if thread.LastActivityTS > 0 {
			when = "  " + faintStyle.Render(formatTimestamp(thread.LastActivityTS))
		}

		b.WriteString(name + unread + when + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHistory(thread session.Thread, messages []session.Message) string {
	var b strings.Builder
	b.WriteString(nameStyle(thread).Render(label(thread)) + "\n")
	for _, message := range messages {
		sender := message.SenderName
		if sender == "" {
			sender = message.SenderID
		}
		fmt.Fprintf(&b, "%s %s: %s\n",
			faintStyle.Render(formatTimestamp(message.Timestamp)),
			sender,
			message.Body,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatTimestamp renders a backend millisecond timestamp in local
// time, dropping the date for same-day activity.
func formatTimestamp(ms int64) string {
	at := time.UnixMilli(ms).Local()
	now := time.Now()
	if at.Year() == now.Year() && at.YearDay() == now.YearDay() {
		return at.Format("15:04")
	}
	return at.Format("Jan 2 15:04")
}
