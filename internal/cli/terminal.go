// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/askrun/internal/util"
)

// ============================================================================
// TTY DETECTION
// ============================================================================

// Terminal size defaults used when detection fails (piped output, CI).
const (
	DefaultTerminalWidth  = 80
	DefaultTerminalHeight = 24
	MinTerminalWidth      = 40
)

// IsTTY returns true if stdin is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is connected to a terminal.
// When false, output is being piped or redirected and should stay plain.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY returns true if stderr is connected to a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// GetTerminalWidth returns the current terminal width in columns,
// falling back to DefaultTerminalWidth when stdout is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return DefaultTerminalWidth
	}
	return width
}

// GetTerminalSize returns the terminal dimensions with sane fallbacks.
func GetTerminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return width, height
}

// ============================================================================
// COLOR SUPPORT
// ============================================================================

var (
	colorsOnce    sync.Once
	colorsEnabled bool
)

// ColorsEnabled reports whether styled output should be emitted.
// NO_COLOR disables colors, FORCE_COLOR enables them even when piped,
// otherwise colors follow stdout TTY detection. Cached after first call.
func ColorsEnabled() bool {
	colorsOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}
		colorsEnabled = IsStdoutTTY()
	})
	return colorsEnabled
}

// GetColorProfile returns the termenv color profile for the current
// terminal, downgraded to Ascii when colors are disabled.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// ============================================================================
// TEXT WRAPPING
// ============================================================================

// WrapText wraps text to the given width on word boundaries. Words longer
// than the width are emitted on their own line rather than split.
func WrapText(text string, width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}

	var out strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(wrapLine(line, width))
	}
	return out.String()
}

func wrapLine(line string, width int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var out strings.Builder
	lineLen := 0
	for i, word := range words {
		w := util.StringWidth(word)
		if i > 0 {
			if lineLen+1+w > width {
				out.WriteString("\n")
				lineLen = 0
			} else {
				out.WriteString(" ")
				lineLen++
			}
		}
		out.WriteString(word)
		lineLen += w
	}
	return out.String()
}
