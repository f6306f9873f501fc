// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"fmt"
	"log/slog"
)

// maxPollRetries is the number of consecutive /events failures allowed
// before Next returns an error. Each retry uses a 1-second server-side
// timeout so the HTTP round-trip itself provides backoff.
const maxPollRetries = 5

// longPollTimeout is the server-side long-poll hold time in milliseconds
// for normal /events calls. The server holds the connection for up to
// this duration, returning immediately when new events arrive.
const longPollTimeout = 30000

// retryTimeout is the server-side timeout in milliseconds used after a
// poll error. Short so the retry completes quickly.
const retryTimeout = 1000

// EventStream captures a position in the backend's push-event stream.
// Create one with NewEventStream after login, then call Next repeatedly
// to receive events arriving after the checkpoint.
//
// All waiting uses long-polling: the server holds the connection until
// new events arrive, then returns immediately. There is no client-side
// polling interval.
//
// EventStream is not safe for concurrent use by multiple goroutines;
// the session's listen loop is its only consumer.
type EventStream struct {
	session *DirectSession
	cursor  string  // stream position token
	pending []Event // events received but not yet consumed
}

// NewEventStream captures the current position in the event stream.
// The returned EventStream only sees events arriving after this call.
//
// This performs an immediate poll (timeout=0) to obtain the current
// cursor without blocking. The cursor anchors all subsequent long-poll
// calls.
func NewEventStream(ctx context.Context, session *DirectSession) (*EventStream, error) {
	response, err := session.PollEvents(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("messaging: initial event poll: %w", err)
	}
	return &EventStream{
		session: session,
		cursor:  response.NextCursor,
	}, nil
}

// Next blocks until the next event arrives. Events are buffered: when a
// single poll delivers several, they are returned one per call without
// touching the network again. Bounded by ctx. On transient poll errors,
// retries up to 5 times with a 1-second server timeout, resetting idle
// connections so the next attempt opens a fresh socket.
func (s *EventStream) Next(ctx context.Context) (Event, error) {
	if len(s.pending) > 0 {
		event := s.pending[0]
		s.pending = s.pending[1:]
		return event, nil
	}

	var pollRetries int
	for {
		// On retry after an error, use a short server-side timeout
		// so the round-trip itself provides backoff. On first attempt
		// or after success, use the normal long-poll hold.
		pollTimeout := longPollTimeout
		if pollRetries > 0 {
			pollTimeout = retryTimeout
		}
		response, err := s.session.PollEvents(ctx, s.cursor, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return Event{}, fmt.Errorf("context cancelled waiting for events: %w", ctx.Err())
			}
			pollRetries++
			// TCP-level errors often indicate a poisoned connection in
			// Go's HTTP pool. Drop idle connections so the next attempt
			// opens a fresh socket.
			s.session.CloseIdleConnections()
			if pollRetries > maxPollRetries {
				return Event{}, fmt.Errorf("event poll failed %d consecutive times: %w", pollRetries, err)
			}
			slog.Debug("event poll error, retrying",
				"attempt", pollRetries,
				"max_attempts", maxPollRetries,
				"error", err,
			)
			continue
		}
		pollRetries = 0
		s.cursor = response.NextCursor

		if len(response.Events) == 0 {
			// Long-poll expired with nothing new.
			continue
		}

		event := response.Events[0]
		s.pending = append(s.pending, response.Events[1:]...)
		return event, nil
	}
}

// Cursor returns the current stream position token.
func (s *EventStream) Cursor() string {
	return s.cursor
}
