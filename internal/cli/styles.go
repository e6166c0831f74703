// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ============================================================================
// SHARED STYLES
// ============================================================================

func init() {
	// Styles degrade to plain text when colors are off or output is piped.
	lipgloss.SetColorProfile(GetColorProfile())
}

// Shared lipgloss styles used by every command handler. Keeping them in
// one place keeps the ask, chat, history, and config output consistent.
var (
	// TitleStyle for command headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	// LabelStyle for field labels in key/value displays.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// AnswerStyle for the answer body when markdown rendering is off.
	AnswerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// SourceStyle for source URLs under a search answer.
	SourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	// RouteStyle for the routing line (MATH / SEARCH).
	RouteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	// SuccessStyle for success markers.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// ErrorStyle for errors and error-mode answers.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// WarningStyle for degraded results and cautions.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// DimStyle for secondary text (timestamps, hints, separators).
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ============================================================================
// RENDER HELPERS
// ============================================================================

// RenderSeparator returns a dim horizontal rule of the given width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 50
	}
	return DimStyle.Render(strings.Repeat("-", width))
}

// RenderLabel renders a label padded to the given width.
func RenderLabel(label string, width int) string {
	padded := fmt.Sprintf("%-*s", width, label)
	return LabelStyle.Render(padded)
}

// RenderRoute renders the routing line for a decision: the route name
// highlighted, the reason dimmed.
func RenderRoute(route, reason string) string {
	return fmt.Sprintf("%s %s", RouteStyle.Render("["+route+"]"), DimStyle.Render(reason))
}
