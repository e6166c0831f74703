// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "github.com/jeranaias/askrun/internal/agent"

// =============================================================================
// MESSAGES
// =============================================================================

// answerMsg carries a completed query's outcome back into the update loop.
type answerMsg struct {
	query   string
	outcome *agent.Outcome
	err     error
}

// copiedMsg reports the result of a clipboard copy.
type copiedMsg struct {
	err error
}

// historyClearedMsg reports the result of clearing stored history.
type historyClearedMsg struct {
	err error
}

// exportedMsg reports the result of exporting the last answer to a file.
type exportedMsg struct {
	path string
	err  error
}
