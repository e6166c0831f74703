// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package response defines the structured record every query resolves to.
//
// A Structured value is the single shape the rest of the application
// consumes: {mode, answer, sources}. The Build* constructors and Sanitize
// are the only point where the shape invariants are enforced; handlers
// never hand their raw output to a caller directly.
//
// Invariants enforced here:
//   - mode is always one of math, search, error (unknown modes repair to error)
//   - math responses carry no sources
//   - a search response with no sources states that nothing was found
//   - answer is never empty
package response
