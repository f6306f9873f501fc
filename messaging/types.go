// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by Login.
type AuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// Friend is one entry of the user's social-graph snapshot. The snapshot
// is read-only for the duration of a session.
type Friend struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
}

// User is the logged-in user's profile, returned by Me.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Friends []Friend `json:"friends"`
}

// Thread is a conversation as reported by the backend. Name is empty for
// threads never given one (one-to-one conversations typically carry no
// name; the client derives a label from the counterpart's profile).
type Thread struct {
	ThreadID       string `json:"thread_id"`
	Name           string `json:"name,omitempty"`
	Color          string `json:"color,omitempty"`
	LastActivityTS int64  `json:"last_activity_ts"`
	UnreadCount    int    `json:"unread_count"`
}

// ThreadListResponse is returned by ThreadList.
type ThreadListResponse struct {
	Threads    []Thread `json:"threads"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// Message is a single message within a thread.
type Message struct {
	MessageID  string `json:"message_id"`
	ThreadID   string `json:"thread_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	Body       string `json:"body"`
	Timestamp  int64  `json:"timestamp"`
}

// MessagesResponse is returned by ThreadHistory.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// SendMessageResponse is returned by SendMessage.
type SendMessageResponse struct {
	MessageID string `json:"message_id"`
}

// SetColorRequest is the request body for changing a thread's color.
type SetColorRequest struct {
	Color string `json:"color"`
}

// Event kinds delivered by the /events endpoint.
const (
	// EventTypeMessage is an inbound message in some thread.
	EventTypeMessage = "message"
	// EventTypeThread is a thread metadata update (rename, color
	// change, membership change).
	EventTypeThread = "thread"
)

// Event is one asynchronous push event from the backend. Thread is
// always populated with the affected thread's current metadata; Message
// is set only for EventTypeMessage.
type Event struct {
	Type    string   `json:"type"`
	Thread  Thread   `json:"thread"`
	Message *Message `json:"message,omitempty"`
}

// EventsResponse is returned by the long-poll /events endpoint.
type EventsResponse struct {
	Events     []Event `json:"events"`
	NextCursor string  `json:"next_cursor"`
}
