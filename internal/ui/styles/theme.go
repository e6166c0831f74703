// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the TUI, sized to the terminal.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// CONVERSATION STYLES
	// ==========================================================================

	Query        lipgloss.Style
	QueryPrefix  lipgloss.Style
	Answer       lipgloss.Style
	AnswerError  lipgloss.Style
	SourceTitle  lipgloss.Style
	SourceURL    lipgloss.Style
	Timestamp    lipgloss.Style
	Separator    lipgloss.Style

	// Route badges shown next to each answer.
	BadgeMath   lipgloss.Style
	BadgeSearch lipgloss.Style
	BadgeError  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusReady  lipgloss.Style
	StatusBusy   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme builds a theme for the given terminal dimensions.
func NewTheme(width, height int) *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Width:        width,
		Height:       height,
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Width(width).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)
	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Query = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.QueryPrefix = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Answer = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.AnswerError = lipgloss.NewStyle().
		Foreground(Rose)
	t.SourceTitle = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.SourceURL = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Padding(0, 1)
	t.BadgeMath = badge.Background(Emerald)
	t.BadgeSearch = badge.Background(Amber)
	t.BadgeError = badge.Background(Rose)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Width(width - 2).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Width(width).
		Padding(0, 1)
	t.StatusReady = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.StatusBusy = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	return t
}

// Resize updates the width-dependent styles in place.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
	t.Header = t.Header.Width(width)
	t.StatusBar = t.StatusBar.Width(width)
	t.InputContainer = t.InputContainer.Width(width - 2)
}
