// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive askrun TUI on Bubble Tea.
//
// The view is a single conversation screen: a viewport of past
// query/answer exchanges, a text input, and a status bar. Queries run
// asynchronously through the agent as tea commands so the interface
// stays responsive while providers are slow; a spinner shows progress
// and answers append to the transcript when they arrive.
package ui
