// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the adaptive color palette and the Theme type
// used by the askrun TUI. Colors are defined once as lipgloss
// AdaptiveColor values so light and dark terminals both render legibly,
// and the Theme groups the derived styles so the view code never
// constructs styles inline.
package styles
