// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mathexpr evaluates arithmetic expressions over a restricted
// grammar without ever executing arbitrary code.
//
// The grammar accepts numeric literals (integer, decimal, scientific
// exponent), the binary operators + - * / %, exponentiation ^
// (right-associative), unary minus, and parentheses. Nothing else:
// identifiers, function calls, and any other token are rejected with a
// SecurityError before evaluation begins. This is the security boundary
// for user-supplied math input, enforced by a hand-written
// recursive-descent parser rather than any eval-like facility.
//
// Evaluation is a pure function: the same expression always yields the
// same result and no state is retained between calls.
//
//	value, err := mathexpr.Eval("(23*47)+199")  // 1280
//	text := mathexpr.FormatResult(value)        // "1280"
//
// Extract pulls the longest arithmetic run out of surrounding prose, so
// "Compute 19^3 + 47" evaluates the "19^3 + 47" portion.
package mathexpr
