// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the askrun application.
//
// This package contains common helper functions used throughout the application
// for string manipulation and file operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: Display-width aware truncation (CJK safe)
//   - StringWidth: Display-column width of a string
//   - Flatten: Collapse a multi-line string to a single line
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Truncate long snippets safely for display
//	display := util.TruncateRunes(snippet, 50)
//
//	// Write exports atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
