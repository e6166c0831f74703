// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathexpr

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERROR TYPES
// ============================================================================

// ErrEmpty is returned when the expression contains no tokens at all.
var ErrEmpty = errors.New("empty expression")

// EvalError reports malformed syntax: unbalanced parentheses, a dangling
// operator, a malformed number. Terminal for the query; never retried.
type EvalError struct {
	// Pos is the rune offset where parsing failed.
	Pos int
	// Msg describes what the parser expected.
	Msg string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("invalid expression at position %d: %s", e.Pos, e.Msg)
}

// DomainError reports a mathematically undefined operation: division or
// modulo by zero, or a non-finite result (overflow, 0^-1 and friends).
type DomainError struct {
	// Op names the operation that failed, e.g. "/" or "^".
	Op string
	// Msg describes the violation.
	Msg string
}

func (e *DomainError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("domain error in %q: %s", e.Op, e.Msg)
	}
	return "domain error: " + e.Msg
}

// SecurityError reports a token outside the restricted grammar. Anything
// that is not a number, arithmetic operator, or parenthesis lands here;
// the offending input is never evaluated.
type SecurityError struct {
	// Token is the rejected input fragment.
	Token string
	// Pos is the rune offset of the token.
	Pos int
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("disallowed token %q at position %d", e.Token, e.Pos)
}

// IsSecurityError reports whether err is (or wraps) a SecurityError.
func IsSecurityError(err error) bool {
	var se *SecurityError
	return errors.As(err, &se)
}

// IsDomainError reports whether err is (or wraps) a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
