// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"
)

// DirectSession is an authenticated backend session. It wraps a Client
// with an access token for authenticated API calls. DirectSessions are
// lightweight: a pointer to the parent Client plus the token.
type DirectSession struct {
	client      *Client
	accessToken string
	userID      string

	// transactionCounter generates unique transaction IDs for
	// idempotent message sends.
	transactionCounter atomic.Int64
}

// UserID returns the user ID the session authenticated as.
func (s *DirectSession) UserID() string {
	return s.userID
}

// AccessToken returns the access token. Use only at persistence
// boundaries (the saved-session file); prefer passing the DirectSession
// itself otherwise.
func (s *DirectSession) AccessToken() string {
	return s.accessToken
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call after a poll error to force the
// next request onto a fresh TCP connection.
func (s *DirectSession) CloseIdleConnections() {
	s.client.CloseIdleConnections()
}

// Me fetches the logged-in user's profile, including the friends
// snapshot used for thread name resolution. Also serves as token
// validation: a stale saved token fails here with ERR_UNKNOWN_TOKEN.
func (s *DirectSession) Me(ctx context.Context) (*User, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/me", s.accessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: me failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse me response: %w", err)
	}
	return &user, nil
}

// Logout invalidates the session's access token on the backend.
func (s *DirectSession) Logout(ctx context.Context) error {
	_, err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/logout", s.accessToken, struct{}{})
	if err != nil {
		return fmt.Errorf("messaging: logout failed: %w", err)
	}
	s.client.logger.Info("logged out of backend", "user_id", s.userID)
	return nil
}

// ThreadList fetches the most recent threads, newest first. folders
// restricts the listing (e.g., "inbox"); an empty slice means all
// folders. cursor continues a previous page; empty starts from the top.
func (s *DirectSession) ThreadList(ctx context.Context, limit int, cursor string, folders []string) (*ThreadListResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	for _, folder := range folders {
		query.Add("folder", folder)
	}

	body, err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/threads", s.accessToken, nil, query)
	if err != nil {
		return nil, fmt.Errorf("messaging: thread list failed: %w", err)
	}

	var response ThreadListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse thread list response: %w", err)
	}
	return &response, nil
}

// ThreadInfo fetches a single thread by exact id.
// Returns a *APIError with code ERR_NOT_FOUND for unknown ids.
func (s *DirectSession) ThreadInfo(ctx context.Context, threadID string) (*Thread, error) {
	path := "/api/v1/threads/" + url.PathEscape(threadID)
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: thread info for %q failed: %w", threadID, err)
	}

	var thread Thread
	if err := json.Unmarshal(body, &thread); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse thread info response: %w", err)
	}
	return &thread, nil
}

// ThreadHistory fetches the most recent messages of a thread, oldest
// first. limit caps the page size; 0 uses the server default.
func (s *DirectSession) ThreadHistory(ctx context.Context, threadID string, limit int) ([]Message, error) {
	path := "/api/v1/threads/" + url.PathEscape(threadID) + "/messages"
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil, query)
	if err != nil {
		return nil, fmt.Errorf("messaging: thread history for %q failed: %w", threadID, err)
	}

	var response MessagesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse thread history response: %w", err)
	}
	return response.Messages, nil
}

// SendMessage sends a text message to a thread. Uses an idempotent PUT
// with a transaction ID so a retried request cannot double-send.
// Returns the message ID assigned by the backend.
func (s *DirectSession) SendMessage(ctx context.Context, threadID, messageBody string) (string, error) {
	transactionID := s.nextTransactionID()
	path := fmt.Sprintf("/api/v1/threads/%s/messages/%s",
		url.PathEscape(threadID),
		url.PathEscape(transactionID),
	)

	body, err := s.client.doRequest(ctx, http.MethodPut, path, s.accessToken, SendMessageRequest{Body: messageBody})
	if err != nil {
		return "", fmt.Errorf("messaging: send message to %q failed: %w", threadID, err)
	}

	var response SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("messaging: failed to parse send response: %w", err)
	}
	return response.MessageID, nil
}

// SetThreadColor changes a thread's display color.
func (s *DirectSession) SetThreadColor(ctx context.Context, threadID, color string) error {
	path := "/api/v1/threads/" + url.PathEscape(threadID) + "/color"
	_, err := s.client.doRequest(ctx, http.MethodPut, path, s.accessToken, SetColorRequest{Color: color})
	if err != nil {
		return fmt.Errorf("messaging: set color for %q failed: %w", threadID, err)
	}
	return nil
}

// MarkRead marks all messages in a thread as read.
func (s *DirectSession) MarkRead(ctx context.Context, threadID string) error {
	path := "/api/v1/threads/" + url.PathEscape(threadID) + "/read"
	_, err := s.client.doRequest(ctx, http.MethodPost, path, s.accessToken, struct{}{})
	if err != nil {
		return fmt.Errorf("messaging: mark read for %q failed: %w", threadID, err)
	}
	return nil
}

// PollEvents performs one long-poll against the /events endpoint.
// cursor is the position token from the previous poll; empty anchors at
// the current stream position without waiting. timeout is the
// server-side hold time in milliseconds; the server returns early when
// events arrive. Most callers should use [NewEventStream] instead.
func (s *DirectSession) PollEvents(ctx context.Context, cursor string, timeout int) (*EventsResponse, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	query.Set("timeout", strconv.Itoa(timeout))

	body, err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/events", s.accessToken, nil, query)
	if err != nil {
		return nil, fmt.Errorf("messaging: event poll failed: %w", err)
	}

	var response EventsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse events response: %w", err)
	}
	return &response, nil
}

// nextTransactionID generates a unique transaction ID for idempotent
// message sending. Format: "parley-<timestamp_ms>-<counter>" to ensure
// uniqueness across restarts.
func (s *DirectSession) nextTransactionID() string {
	counter := s.transactionCounter.Add(1)
	return fmt.Sprintf("parley-%d-%d", time.Now().UnixMilli(), counter)
}
