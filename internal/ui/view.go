// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("askrun")
	hint := m.theme.HeaderHint.Render("math stays local, everything else hits the web")
	return m.theme.Header.Render(title + "  " + hint)
}

func (m *Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Render(prompt + m.input.View())
}

func (m *Model) renderStatusBar() string {
	var status string
	if m.state == StateWorking {
		status = m.spinner.View() + m.theme.StatusBusy.Render(" working")
	} else {
		status = m.theme.StatusReady.Render("ready")
	}

	if m.statusMsg != "" {
		status += m.theme.ShortcutDesc.Render("  " + m.statusMsg)
	}

	shortcuts := strings.Join([]string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" ask"),
		m.theme.ShortcutKey.Render("ctrl+y") + m.theme.ShortcutDesc.Render(" copy"),
		m.theme.ShortcutKey.Render("ctrl+e") + m.theme.ShortcutDesc.Render(" export"),
		m.theme.ShortcutKey.Render("ctrl+l") + m.theme.ShortcutDesc.Render(" clear"),
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" quit"),
	}, "  ")

	gap := m.width - lipgloss.Width(status) - lipgloss.Width(shortcuts) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Render(status + strings.Repeat(" ", gap) + shortcuts)
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var parts []string
	for _, ex := range m.exchanges {
		parts = append(parts, renderExchange(m.theme, ex, m.viewport.Width))
	}
	if len(parts) == 0 {
		parts = append(parts, m.theme.HeaderHint.Render("\n  Try \"2 + 2 * 10\" or \"capital of France\"."))
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
}

// =============================================================================
// EXCHANGE RENDERING
// =============================================================================

// renderExchange renders one query/answer pair for the transcript.
func renderExchange(theme *styles.Theme, ex exchange, width int) string {
	var b strings.Builder

	ts := theme.Timestamp.Render(ex.at.Local().Format(time.Kitchen))
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		theme.QueryPrefix.Render(">"),
		theme.Query.Render(ex.query),
		ts))

	out := ex.outcome
	if out == nil || out.Response == nil {
		return b.String()
	}
	resp := out.Response

	b.WriteString(renderBadge(theme, out) + "\n")

	answerStyle := theme.Answer
	if resp.Mode == response.ModeError {
		answerStyle = theme.AnswerError
	}
	for _, line := range strings.Split(resp.Answer, "\n") {
		b.WriteString("  " + answerStyle.Render(line) + "\n")
	}

	for i, src := range resp.Sources {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			theme.SourceTitle.Render(fmt.Sprintf("[%d] %s", i+1, title)),
			theme.SourceURL.Render(src.URL)))
	}

	sep := width - 2
	if sep < 4 {
		sep = 4
	}
	b.WriteString(theme.Separator.Render(strings.Repeat("-", sep)) + "\n")
	return b.String()
}

// renderBadge renders the route/mode badge line for an answer.
func renderBadge(theme *styles.Theme, out *agent.Outcome) string {
	resp := out.Response

	var badge string
	switch resp.Mode {
	case response.ModeMath:
		badge = theme.BadgeMath.Render("MATH")
	case response.ModeSearch:
		badge = theme.BadgeSearch.Render("SEARCH")
	default:
		badge = theme.BadgeError.Render("ERROR")
	}

	// Entries restored from the store carry no decision or timing.
	detail := out.Decision.Reason
	if out.Elapsed > 0 {
		detail = strings.TrimSpace(detail + fmt.Sprintf(" (%dms)", out.Elapsed.Milliseconds()))
	}
	if detail == "" {
		return "  " + badge
	}
	return "  " + badge + " " + theme.Timestamp.Render(detail)
}
