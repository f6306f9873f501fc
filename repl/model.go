// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/parley-im/parley/session"
)

const baseTitle = "parley"

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	inputEcho   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noticeStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	lockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Options configures the interactive host.
type Options struct {
	// TitleNotifications enables the terminal-title unread counter.
	TitleNotifications bool
	// PreviewNotifications includes message bodies in inline alerts.
	PreviewNotifications bool
}

// noticeMsg wraps a session Notice for delivery through the bubbletea
// message loop.
type noticeMsg struct {
	notice session.Notice
}

// commandDoneMsg is sent when an asynchronously executed command line
// completes.
type commandDoneMsg struct {
	output string
	err    error
}

// Model is the bubbletea model of the interactive session.
type Model struct {
	session *session.Session
	options Options
	output  *termenv.Output

	viewport   viewport.Model
	input      textinput.Model
	transcript []string
	ready      bool
	busy       bool
}

// NewModel builds the interactive model around an established session.
func NewModel(s *session.Session, options Options, output *termenv.Output) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a command, or `help`"
	input.Focus()

	return Model{
		session: s,
		options: options,
		output:  output,
		input:   input,
		transcript: []string{
			fmt.Sprintf("logged in as %s — `help` lists commands", s.User().Name),
		},
	}
}

// Init implements tea.Model. Starts listening for session notices.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForNotice(m.session.Notices()))
}

// listenForNotice returns a tea.Cmd that blocks until a notice arrives,
// then delivers it as a noticeMsg.
func listenForNotice(channel <-chan session.Notice) tea.Cmd {
	return func() tea.Msg {
		notice, ok := <-channel
		if !ok {
			return nil
		}
		return noticeMsg{notice: notice}
	}
}

// runCommand executes one line through the session off the UI
// goroutine. Commands never overlap: the prompt is disabled until the
// commandDoneMsg arrives.
func runCommand(s *session.Session, line string) tea.Cmd {
	return func() tea.Msg {
		output, err := s.ProcessCommand(context.Background(), line)
		return commandDoneMsg{output: output, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(message), nil

	case tea.KeyMsg:
		switch message.Type {
		case tea.KeyCtrlC:
			m.resetTitle()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submitLine()
		}

	case commandDoneMsg:
		return m.handleCommandDone(message)

	case noticeMsg:
		return m.handleNotice(message)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(message)
	return m, cmd
}

func (m Model) handleResize(size tea.WindowSizeMsg) Model {
	inputHeight := 2 // prompt line plus status line
	if !m.ready {
		m.viewport = viewport.New(size.Width, size.Height-inputHeight)
		m.ready = true
	} else {
		m.viewport.Width = size.Width
		m.viewport.Height = size.Height - inputHeight
	}
	m.input.Width = size.Width - len(m.input.Prompt)
	m.syncTranscript()
	return m
}

func (m Model) submitLine() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	line := m.input.Value()
	m.input.Reset()

	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.append(inputEcho.Render("> " + line))
	m.busy = true
	// Any command resets the unread counter; reflect that in the title
	// immediately rather than after the round-trip.
	m.resetTitle()
	return m, runCommand(m.session, line)
}

func (m Model) handleCommandDone(message commandDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if message.err != nil {
		m.append(errorStyle.Render(message.err.Error()))
	} else if message.output != "" {
		m.append(message.output)
	}

	if m.session.State() == session.Terminated {
		m.resetTitle()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleNotice(message noticeMsg) (tea.Model, tea.Cmd) {
	notice := message.notice

	alert := fmt.Sprintf("✉ %s", notice.ThreadName)
	if m.options.PreviewNotifications && notice.Preview != "" {
		alert += ": " + notice.Preview
	}
	m.append(noticeStyle.Render(alert))

	if m.options.TitleNotifications && m.output != nil {
		m.output.SetWindowTitle(fmt.Sprintf("(%d) %s", notice.Unread, baseTitle))
	}

	// Always re-listen for the next notice.
	return m, listenForNotice(m.session.Notices())
}

// append adds a line to the transcript and keeps the viewport pinned to
// the bottom.
func (m *Model) append(line string) {
	m.transcript = append(m.transcript, line)
	m.syncTranscript()
}

func (m *Model) syncTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) resetTitle() {
	if m.options.TitleNotifications && m.output != nil {
		m.output.SetWindowTitle(baseTitle)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	status := promptStyle.Render(m.session.User().Name)
	if target, pinned := m.session.Lock().Target(); pinned {
		status += "  " + lockStyle.Render("[locked: "+target+"]")
	}
	if m.busy {
		status += "  " + noticeStyle.Render("working...")
	}

	return m.viewport.View() + "\n" + m.input.View() + "\n" + status
}

// Run starts the interactive program over an established session and
// blocks until the user logs out or interrupts.
func Run(s *session.Session, options Options) error {
	output := termenv.DefaultOutput()
	model := NewModel(s, options, output)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
