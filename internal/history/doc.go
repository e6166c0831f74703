// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists the most recent queries and their responses.
//
// History is presentation-layer state: the agent core never reads it. The
// store is SQLite-backed and bounded, holding the most recent entries
// (10 by default) with the oldest evicted first on insert. Exports render
// single entries as JSON and the whole history as Markdown.
package history
