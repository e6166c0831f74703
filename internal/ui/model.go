// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the current interaction state.
type State int

const (
	// StateReady accepts input.
	StateReady State = iota
	// StateWorking means a query is in flight.
	StateWorking
)

// =============================================================================
// MODEL
// =============================================================================

// exchange is one query/answer pair in the transcript.
type exchange struct {
	query   string
	outcome *agent.Outcome
	at      time.Time
}

// Model is the Bubble Tea model for the conversation screen.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int
	ready  bool

	agent *agent.Agent
	store *history.Store
	cfg   *config.Config

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	exchanges []exchange
	statusMsg string
	started   time.Time
}

// New creates the TUI model. The store may be nil when history is
// disabled.
func New(cfg *config.Config, a *agent.Agent, store *history.Store) *Model {
	input := textinput.New()
	input.Placeholder = "Ask a question or type an expression..."
	input.CharLimit = 4096
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	m := &Model{
		state:   StateReady,
		theme:   styles.NewTheme(80, 24),
		agent:   a,
		store:   store,
		cfg:     cfg,
		input:   input,
		spinner: sp,
		started: time.Now(),
	}
	m.loadStoredHistory()
	return m
}

// loadStoredHistory seeds the transcript with persisted entries so a new
// session shows where the last one left off. Entries come back newest
// first; the transcript reads oldest first.
func (m *Model) loadStoredHistory() {
	if m.store == nil {
		return
	}
	entries, err := m.store.List()
	if err != nil {
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		m.exchanges = append(m.exchanges, exchange{
			query:   e.Query,
			outcome: &agent.Outcome{Response: e.Response},
			at:      e.Timestamp,
		})
	}
}

// Init starts the spinner tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// lastAnswer returns the most recent answer text, or "" when the
// transcript is empty.
func (m *Model) lastAnswer() string {
	if resp := m.lastResponse(); resp != nil {
		return resp.Answer
	}
	return ""
}

// lastResponse returns the most recent structured response, or nil.
func (m *Model) lastResponse() *response.Structured {
	for i := len(m.exchanges) - 1; i >= 0; i-- {
		if out := m.exchanges[i].outcome; out != nil && out.Response != nil {
			return out.Response
		}
	}
	return nil
}

// setStatus sets a transient status line message.
func (m *Model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
}

// =============================================================================
// PROGRAM ENTRY
// =============================================================================

// Run starts the TUI and blocks until the user quits.
func Run(cfg *config.Config, a *agent.Agent, store *history.Store) error {
	program := tea.NewProgram(New(cfg, a, store), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
