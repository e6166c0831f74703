// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Fixed vertical space outside the viewport: header, input box (3 with
// border), status bar.
const chromeHeight = 5

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case answerMsg:
		return m.handleAnswer(msg)
	case copiedMsg:
		if msg.err != nil {
			m.setStatus("copy failed: %v", msg.err)
		} else {
			m.setStatus("answer copied")
		}
		return m, nil
	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export failed: %v", msg.err)
		} else {
			m.setStatus("exported to %s", msg.path)
		}
		return m, nil
	case historyClearedMsg:
		if msg.err != nil {
			m.setStatus("clear failed: %v", msg.err)
			return m, nil
		}
		m.exchanges = nil
		m.refreshViewport()
		m.setStatus("history cleared")
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// handleResize lays the screen out for new terminal dimensions.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.Resize(msg.Width, msg.Height)

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.input.Width = msg.Width - 6
	m.refreshViewport()
	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.state != StateReady {
			return m, nil
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.input.Reset()
		m.state = StateWorking
		m.statusMsg = ""
		return m, tea.Batch(askCmd(m.agent, m.store, query), m.spinner.Tick)

	case "ctrl+y":
		answer := m.lastAnswer()
		if answer == "" {
			m.setStatus("nothing to copy")
			return m, nil
		}
		return m, copyCmd(answer)

	case "ctrl+e":
		resp := m.lastResponse()
		if resp == nil {
			m.setStatus("nothing to export")
			return m, nil
		}
		return m, exportCmd(resp)

	case "ctrl+l":
		return m, clearHistoryCmd(m.store)
	}

	return m.updateComponents(msg)
}

// handleAnswer appends a completed exchange to the transcript.
func (m *Model) handleAnswer(msg answerMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	if msg.err != nil {
		m.setStatus("error: %v", msg.err)
		return m, nil
	}

	m.exchanges = append(m.exchanges, exchange{
		query:   msg.query,
		outcome: msg.outcome,
		at:      time.Now(),
	})
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// updateComponents forwards messages to the input and viewport.
func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
