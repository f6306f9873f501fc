// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import "context"

// Thread is the cached projection of a conversation — the minimal
// metadata the session needs for resolution and display, not the full
// remote object.
type Thread struct {
	// ID is the opaque thread identifier, primary key of the cache.
	ID string
	// Name is the display name; empty for threads never given one by
	// the backend.
	Name string
	// Color is a display attribute, passed through untouched.
	Color string
	// LastActivityTS orders threads by recency (backend timestamp,
	// milliseconds).
	LastActivityTS int64
	// UnreadCount is the backend's unread tally for the thread.
	UnreadCount int
}

// Friend is one entry of the read-only social-graph snapshot supplied
// by the backend at login.
type Friend struct {
	UserID   string
	FullName string
}

// User is the logged-in user, including the friends snapshot the
// resolver falls back to.
type User struct {
	ID      string
	Name    string
	Friends []Friend
}

// Message is a single message within a thread.
type Message struct {
	MessageID  string
	ThreadID   string
	SenderID   string
	SenderName string
	Body       string
	Timestamp  int64
}

// EventKind discriminates asynchronous backend push events.
type EventKind int

const (
	// EventMessage is an inbound message in some thread.
	EventMessage EventKind = iota
	// EventThread is a thread metadata update.
	EventThread
)

// Event is one asynchronous push event. Thread always carries the
// affected thread's current metadata; Message is set for EventMessage.
type Event struct {
	Kind    EventKind
	Thread  Thread
	Message *Message
}

// Backend is the remote messaging collaborator. Implementations wrap
// the wire protocol (see the messaging package); the session treats
// every call as an opaque operation that either yields a result or
// fails.
type Backend interface {
	// Login authenticates and returns the user record, including the
	// friends snapshot.
	Login(ctx context.Context) (User, error)

	// Logout invalidates the session on the backend.
	Logout(ctx context.Context) error

	// Listen begins asynchronous event delivery. The returned channel
	// is closed when the stream ends (context cancellation or an
	// unrecoverable poll failure).
	Listen(ctx context.Context) (<-chan Event, error)

	// ThreadList fetches the most recent threads, newest first.
	ThreadList(ctx context.Context, limit int, cursor string, folders []string) ([]Thread, error)

	// ThreadInfo fetches a single thread by exact id.
	ThreadInfo(ctx context.Context, id string) (Thread, error)

	// ThreadHistory fetches recent messages of a thread, oldest first.
	ThreadHistory(ctx context.Context, id string, limit int) ([]Message, error)

	// SendMessage sends a text message, returning the new message id.
	SendMessage(ctx context.Context, threadID, body string) (string, error)

	// SetThreadColor changes a thread's display color.
	SetThreadColor(ctx context.Context, threadID, color string) error

	// MarkRead marks all messages in a thread as read.
	MarkRead(ctx context.Context, threadID string) error
}
