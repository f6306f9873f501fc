// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-im/parley/session"
)

type fakeBackend struct {
	logoutErr error
}

func (f *fakeBackend) Login(ctx context.Context) (session.User, error) {
	return session.User{ID: "u1", Name: "Dana"}, nil
}
func (f *fakeBackend) Logout(ctx context.Context) error { return f.logoutErr }
func (f *fakeBackend) Listen(ctx context.Context) (<-chan session.Event, error) {
	events := make(chan session.Event)
	close(events)
	return events, nil
}
func (f *fakeBackend) ThreadList(ctx context.Context, limit int, cursor string, folders []string) ([]session.Thread, error) {
	return []session.Thread{{ID: "t1", Name: "Alice Johnson"}}, nil
}
func (f *fakeBackend) ThreadInfo(ctx context.Context, id string) (session.Thread, error) {
	return session.Thread{}, errors.New("not found")
}
func (f *fakeBackend) ThreadHistory(ctx context.Context, id string, limit int) ([]session.Message, error) {
	return nil, nil
}
func (f *fakeBackend) SendMessage(ctx context.Context, threadID, body string) (string, error) {
	return "m1", nil
}
func (f *fakeBackend) SetThreadColor(ctx context.Context, threadID, color string) error {
	return nil
}
func (f *fakeBackend) MarkRead(ctx context.Context, threadID string) error { return nil }

func newTestModel(t *testing.T, registry session.Registry) Model {
	t.Helper()
	s, err := session.New(session.Config{
		Backend:  &fakeBackend{},
		Registry: registry,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	model := NewModel(s, Options{PreviewNotifications: true}, nil)
	resized, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return resized.(Model)
}

func TestSubmitLineRunsCommand(t *testing.T) {
	registry := session.Registry{
		"ping": func(ctx context.Context, line string, s *session.Session) (string, error) {
			return "pong", nil
		},
	}
	model := newTestModel(t, registry)
	model.input.SetValue("ping")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if !model.busy {
		t.Error("model not busy while a command is in flight")
	}
	if cmd == nil {
		t.Fatal("expected a command to run")
	}

	message := cmd()
	done, ok := message.(commandDoneMsg)
	if !ok {
		t.Fatalf("message = %T, want commandDoneMsg", message)
	}
	if done.output != "pong" {
		t.Errorf("output = %q, want pong", done.output)
	}

	updated, _ = model.Update(done)
	model = updated.(Model)
	if model.busy {
		t.Error("model still busy after the command completed")
	}
	if !strings.Contains(model.View(), "pong") {
		t.Error("transcript missing command output")
	}
}

func TestSubmitWhileBusyIsIgnored(t *testing.T) {
	model := newTestModel(t, session.Registry{})
	model.busy = true
	model.input.SetValue("ping")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if cmd != nil {
		t.Error("a command ran while another was in flight")
	}
	if got := model.input.Value(); got != "ping" {
		t.Errorf("input = %q, want the line preserved while busy", got)
	}
}

func TestCommandErrorStaysInLoop(t *testing.T) {
	model := newTestModel(t, session.Registry{})

	updated, _ := model.Update(commandDoneMsg{err: errors.New("thread not found")})
	model = updated.(Model)

	if !strings.Contains(model.View(), "thread not found") {
		t.Error("transcript missing the error message")
	}
	if model.session.State() != session.Listening {
		t.Errorf("state = %s, want listening", model.session.State())
	}
}

func TestTerminatedSessionQuits(t *testing.T) {
	model := newTestModel(t, session.Registry{})
	if err := model.session.Terminate(context.Background()); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	_, cmd := model.Update(commandDoneMsg{output: "logged out"})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if message := cmd(); message != tea.Quit() {
		t.Errorf("message = %v, want tea.QuitMsg", message)
	}
}

func TestNoticeAppendsAlertAndRelistens(t *testing.T) {
	model := newTestModel(t, session.Registry{})

	updated, cmd := model.Update(noticeMsg{notice: session.Notice{
		Unread:     3,
		ThreadName: "Alice Johnson",
		Preview:    "lunch?",
	}})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "Alice Johnson") || !strings.Contains(view, "lunch?") {
		t.Errorf("view missing the inline alert:\n%s", view)
	}
	if cmd == nil {
		t.Error("model stopped listening for notices")
	}
}

func TestLockIndicatorInStatusLine(t *testing.T) {
	model := newTestModel(t, session.Registry{})
	model.session.Lock().Set("Alice Johnson")

	if !strings.Contains(model.View(), "locked: Alice Johnson") {
		t.Error("status line missing the lock indicator")
	}
}
