// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parley-im/parley/messaging"
	"github.com/parley-im/parley/session"
)

// Token is a previously issued access token for saved-session resume.
type Token struct {
	UserID      string
	AccessToken string
}

// Config holds the collaborators and credentials a Remote is built
// from. Token and Username/Password may both be set: the token is
// tried first and a stale one falls back to a password login.
type Config struct {
	// Client is the wire-level messaging client. Required.
	Client *messaging.Client

	// Token resumes a saved session when set.
	Token *Token

	// Username and Password perform a fresh login when set.
	Username string
	Password string

	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
}

// Remote implements session.Backend over the messaging client.
type Remote struct {
	client   *messaging.Client
	token    *Token
	username string
	password string
	logger   *slog.Logger

	direct *messaging.DirectSession
}

// New creates a Remote. At least one authentication path (token or
// username/password) must be configured.
func New(config Config) (*Remote, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("backend: Client is required")
	}
	if config.Token == nil && config.Username == "" {
		return nil, fmt.Errorf("backend: a saved token or a username is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Remote{
		client:   config.Client,
		token:    config.Token,
		username: config.Username,
		password: config.Password,
		logger:   logger,
	}, nil
}

// Login authenticates against the backend. A saved token is validated
// via the profile endpoint first; if it is stale and a password is
// available, a fresh login replaces it.
func (r *Remote) Login(ctx context.Context) (session.User, error) {
	if r.token != nil {
		direct, err := r.client.SessionFromToken(r.token.UserID, r.token.AccessToken)
		if err != nil {
			return session.User{}, err
		}
		profile, err := direct.Me(ctx)
		if err == nil {
			r.direct = direct
			return convertUser(profile), nil
		}
		if r.username == "" {
			return session.User{}, fmt.Errorf("backend: saved session is stale: %w", err)
		}
		r.logger.Info("saved session is stale, logging in again", "error", err)
	}

	direct, err := r.client.Login(ctx, r.username, r.password)
	if err != nil {
		return session.User{}, err
	}
	profile, err := direct.Me(ctx)
	if err != nil {
		return session.User{}, fmt.Errorf("backend: fetching profile: %w", err)
	}

	r.direct = direct
	return convertUser(profile), nil
}

// Credentials returns the authenticated user id and access token for
// persistence. Only valid after a successful Login.
func (r *Remote) Credentials() (userID, accessToken string) {
	if r.direct == nil {
		return "", ""
	}
	return r.direct.UserID(), r.direct.AccessToken()
}

func (r *Remote) Logout(ctx context.Context) error {
	if r.direct == nil {
		return fmt.Errorf("backend: not logged in")
	}
	return r.direct.Logout(ctx)
}

// Listen starts the long-poll event stream and pumps it into a
// channel. The channel is closed when the stream ends: context
// cancellation or an unrecoverable poll failure.
func (r *Remote) Listen(ctx context.Context) (<-chan session.Event, error) {
	if r.direct == nil {
		return nil, fmt.Errorf("backend: not logged in")
	}

	stream, err := messaging.NewEventStream(ctx, r.direct)
	if err != nil {
		return nil, err
	}

	events := make(chan session.Event)
	go func() {
		defer close(events)
		for {
			event, err := stream.Next(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Error("event stream ended", "error", err)
				}
				return
			}
			select {
			case events <- convertEvent(event):
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (r *Remote) ThreadList(ctx context.Context, limit int, cursor string, folders []string) ([]session.Thread, error) {
	response, err := r.direct.ThreadList(ctx, limit, cursor, folders)
	if err != nil {
		return nil, err
	}
	threads := make([]session.Thread, len(response.Threads))
	for i, thread := range response.Threads {
		threads[i] = convertThread(thread)
	}
	return threads, nil
}

func (r *Remote) ThreadInfo(ctx context.Context, id string) (session.Thread, error) {
	thread, err := r.direct.ThreadInfo(ctx, id)
	if err != nil {
		return session.Thread{}, err
	}
	return convertThread(*thread), nil
}

func (r *Remote) ThreadHistory(ctx context.Context, id string, limit int) ([]session.Message, error) {
	wire, err := r.direct.ThreadHistory(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	messages := make([]session.Message, len(wire))
	for i, message := range wire {
		messages[i] = convertMessage(message)
	}
	return messages, nil
}

func (r *Remote) SendMessage(ctx context.Context, threadID, body string) (string, error) {
	return r.direct.SendMessage(ctx, threadID, body)
}

func (r *Remote) SetThreadColor(ctx context.Context, threadID, color string) error {
	return r.direct.SetThreadColor(ctx, threadID, color)
}

func (r *Remote) MarkRead(ctx context.Context, threadID string) error {
	return r.direct.MarkRead(ctx, threadID)
}

func convertUser(profile *messaging.User) session.User {
	friends := make([]session.Friend, len(profile.Friends))
	for i, friend := range profile.Friends {
		friends[i] = session.Friend{UserID: friend.UserID, FullName: friend.FullName}
	}
	return session.User{ID: profile.ID, Name: profile.Name, Friends: friends}
}

func convertThread(thread messaging.Thread) session.Thread {
	return session.Thread{
		ID:             thread.ThreadID,
		Name:           thread.Name,
		Color:          thread.Color,
		LastActivityTS: thread.LastActivityTS,
		UnreadCount:    thread.UnreadCount,
	}
}

func convertMessage(message messaging.Message) session.Message {
	return session.Message{
		MessageID:  message.MessageID,
		ThreadID:   message.ThreadID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Body:       message.Body,
		Timestamp:  message.Timestamp,
	}
}

func convertEvent(event messaging.Event) session.Event {
	converted := session.Event{Thread: convertThread(event.Thread)}
	switch event.Type {
	case messaging.EventTypeMessage:
		converted.Kind = session.EventMessage
	default:
		converted.Kind = session.EventThread
	}
	if event.Message != nil {
		message := convertMessage(*event.Message)
		converted.Message = &message
	}
	return converted
}
