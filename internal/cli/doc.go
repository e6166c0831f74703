// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the askrun command line interface.
//
// The package parses arguments, dispatches to command handlers, and owns
// all terminal presentation: markdown rendering of answers, lipgloss
// styling, TTY detection, and the machine-readable --json output mode.
//
// Commands:
//
//	askrun                     - interactive TUI (default on a terminal)
//	askrun ask <query>         - answer a single query and exit
//	askrun chat                - line-based REPL without the TUI
//	askrun history [sub]       - show, search, clear, or export history
//	askrun config [sub]        - show or change configuration
//	askrun version             - version information
//
// Handlers return errors rather than exiting; main converts them to
// process exit codes with GetExitCode.
package cli
