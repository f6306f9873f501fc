// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// State is the session lifecycle phase.
type State int

const (
	// Unauthenticated is the initial state, before any login attempt.
	Unauthenticated State = iota
	// Authenticating covers the backend login call.
	Authenticating
	// Listening means login succeeded and events are being delivered;
	// the session accepts commands.
	Listening
	// Terminated means the user logged out. The host decides whether
	// to exit, restart, or report — the session never exits the
	// process itself.
	Terminated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Listening:
		return "listening"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// defaultRefreshLimit is how many of the most recent inbox threads the
// initial warm-cache refresh requests.
const defaultRefreshLimit = 20

// Config holds the collaborators a Session is built from.
type Config struct {
	// Backend is the remote messaging collaborator. Required.
	Backend Backend
	// Registry maps verb tokens to handlers. Required for command
	// processing; must include at least "m" and "unlock" for the lock
	// shorthand to work.
	Registry Registry
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
	// RefreshLimit caps the initial thread-list refresh. Zero uses
	// the default of 20.
	RefreshLimit int
	// RefreshFolders selects which folders the refresh covers. Empty
	// uses the inbox.
	RefreshFolders []string
}

// Session owns all per-session state: the thread cache, the lock
// state, the unread counter, the last active thread, and the user
// record captured at login. One session per process; commands are
// dispatched one at a time by the host.
type Session struct {
	backend        Backend
	registry       Registry
	logger         *slog.Logger
	cache          *ThreadCache
	lock           LockState
	refreshLimit   int
	refreshFolders []string

	unread atomic.Int64

	mu           sync.Mutex
	state        State
	user         User
	lastThreadID string

	notices chan Notice
}

// New creates a Session in the Unauthenticated state.
func New(config Config) (*Session, error) {
	if config.Backend == nil {
		return nil, fmt.Errorf("session: Backend is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	refreshLimit := config.RefreshLimit
	if refreshLimit == 0 {
		refreshLimit = defaultRefreshLimit
	}
	refreshFolders := config.RefreshFolders
	if len(refreshFolders) == 0 {
		refreshFolders = []string{"inbox"}
	}

	return &Session{
		backend:        config.Backend,
		registry:       config.Registry,
		logger:         logger,
		cache:          NewThreadCache(),
		refreshLimit:   refreshLimit,
		refreshFolders: refreshFolders,
		notices:        make(chan Notice, noticeBuffer),
	}, nil
}

// Start drives the session to Listening: backend login, event
// subscription, and a warm-cache refresh of the most recent inbox
// threads. A login failure returns a *LoginError and leaves the
// session Unauthenticated. A failed refresh is logged and non-fatal —
// the cache fills lazily as names are resolved.
func (s *Session) Start(ctx context.Context) error {
	if err := s.login(ctx); err != nil {
		return err
	}

	events, err := s.backend.Listen(ctx)
	if err != nil {
		return fmt.Errorf("session: subscribing to events: %w", err)
	}
	go s.consumeEvents(events)

	if err := s.RefreshThreads(ctx); err != nil {
		s.logger.Warn("initial thread refresh failed", "error", err)
	}
	return nil
}

// StartSingle logs in and executes exactly one command — no event
// subscription, no REPL wiring. Returns the command's output.
func (s *Session) StartSingle(ctx context.Context, line string) (string, error) {
	if err := s.login(ctx); err != nil {
		return "", err
	}
	return s.ProcessCommand(ctx, line)
}

func (s *Session) login(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Unauthenticated {
		current := s.state
		s.mu.Unlock()
		return fmt.Errorf("session: cannot start from state %s", current)
	}
	s.state = Authenticating
	s.mu.Unlock()

	user, err := s.backend.Login(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = Unauthenticated
		s.mu.Unlock()
		return &LoginError{Err: err}
	}

	s.mu.Lock()
	s.user = user
	s.state = Listening
	s.mu.Unlock()

	s.logger.Info("session established",
		"user_id", user.ID,
		"user_name", user.Name,
		"friends", len(user.Friends),
	)
	return nil
}

// Terminate logs out of the backend and moves the session to
// Terminated. Command processing after termination fails with
// ErrNotListening.
func (s *Session) Terminate(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		return fmt.Errorf("session: logout: %w", err)
	}
	s.mu.Lock()
	s.state = Terminated
	s.mu.Unlock()
	s.logger.Info("session terminated")
	return nil
}

// RefreshThreads fetches the most recent inbox threads in one backend
// call and caches them, warming the name index for resolution. A
// backend response with no threads is an error for the refresh (the
// caller decides whether that is fatal).
func (s *Session) RefreshThreads(ctx context.Context) error {
	threads, err := s.backend.ThreadList(ctx, s.refreshLimit, "", s.refreshFolders)
	if err != nil {
		return fmt.Errorf("session: thread list refresh: %w", err)
	}
	if len(threads) == 0 {
		return fmt.Errorf("session: thread list refresh returned no threads")
	}
	for _, thread := range threads {
		s.cache.Put(thread)
	}
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the user record captured at login. Zero before login.
func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Backend returns the remote messaging collaborator for handlers that
// perform operations the session does not wrap.
func (s *Session) Backend() Backend {
	return s.backend
}

// Cache returns the session's thread cache.
func (s *Session) Cache() *ThreadCache {
	return s.cache
}

// Lock returns the session's lock state.
func (s *Session) Lock() *LockState {
	return &s.lock
}

// Logger returns the session's structured logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// UnreadCount returns the number of messages received since the user
// last issued a command.
func (s *Session) UnreadCount() int {
	return int(s.unread.Load())
}

// LastThread returns the most recently active thread, if any. Set by
// inbound message events and by sends; used by the reply command.
func (s *Session) LastThread() (Thread, bool) {
	s.mu.Lock()
	id := s.lastThreadID
	s.mu.Unlock()
	if id == "" {
		return Thread{}, false
	}
	return s.cache.ByID(id)
}

// SetLastThread records the most recently active thread id.
func (s *Session) SetLastThread(id string) {
	s.mu.Lock()
	s.lastThreadID = id
	s.mu.Unlock()
}

// CacheThread stores a thread in the cache, superseding any prior entry
// for the same id. Safe to call from event handlers at any time.
func (s *Session) CacheThread(thread Thread) {
	s.cache.Put(thread)
}
