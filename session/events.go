// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

// noticeBuffer bounds the notices channel. Notices are advisory (they
// drive the terminal-title unread indicator); when the host is slow the
// newest state wins and older notices are dropped.
const noticeBuffer = 16

// Notice tells the host that session state changed behind its back: a
// message arrived while no command was in flight. The host uses it to
// update the terminal title or render an inline alert.
type Notice struct {
	// Unread is the unread-message count after the event.
	Unread int
	// ThreadName labels the thread the event belongs to; may be empty
	// for threads without a cached name.
	ThreadName string
	// Preview is the message body for message events, truncated by
	// the host as needed.
	Preview string
}

// Notices delivers advisory notifications about asynchronous events.
// The channel is buffered and never blocks event handling.
func (s *Session) Notices() <-chan Notice {
	return s.notices
}

// consumeEvents drains the backend event channel, dispatching each
// event to the appropriate handler. Runs on its own goroutine for the
// life of the subscription.
func (s *Session) consumeEvents(events <-chan Event) {
	for event := range events {
		switch event.Kind {
		case EventMessage:
			s.HandleMessageEvent(event)
		case EventThread:
			s.HandleThreadEvent(event)
		}
	}
	s.logger.Debug("event stream closed")
}

// HandleMessageEvent processes one inbound message event: the thread
// snapshot is cached (idempotent, safe against an in-flight command),
// the unread counter is bumped, and the thread becomes the last active
// one for the reply shorthand.
func (s *Session) HandleMessageEvent(event Event) {
	s.cache.Put(event.Thread)
	s.SetLastThread(event.Thread.ID)
	unread := s.unread.Add(1)

	s.logger.Debug("message event",
		"thread_id", event.Thread.ID,
		"unread", unread,
	)

	notice := Notice{Unread: int(unread), ThreadName: event.Thread.Name}
	if event.Message != nil {
		notice.Preview = event.Message.Body
		if notice.ThreadName == "" {
			notice.ThreadName = event.Message.SenderName
		}
	}
	s.notify(notice)
}

// HandleThreadEvent processes one thread metadata update by refreshing
// the cache entry.
func (s *Session) HandleThreadEvent(event Event) {
	s.cache.Put(event.Thread)
	s.logger.Debug("thread event", "thread_id", event.Thread.ID)
}

// notify delivers a notice without ever blocking the event loop: when
// the buffer is full the oldest notice is discarded in favor of the
// new one.
func (s *Session) notify(notice Notice) {
	for {
		select {
		case s.notices <- notice:
			return
		default:
			select {
			case <-s.notices:
			default:
			}
		}
	}
}
