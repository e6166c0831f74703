// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jeranaias/askrun/internal/mathexpr"
)

// ============================================================================
// CLASSIFICATION RULES
// ============================================================================

// inlineArithmetic matches a digit-operator-digit sequence anywhere in the
// query, e.g. "19^3" or "23 * 47".
var inlineArithmetic = regexp.MustCompile(`[0-9]+(\.[0-9]+)?\s*[+\-*/^%]\s*[0-9]+(\.[0-9]+)?`)

// mathKeywords matches imperative math phrasing. The keyword alone is not
// enough to route MATH; the query must also contain an evaluable expression.
var mathKeywords = regexp.MustCompile(`(?i)\b(calc|calculate|compute|what is|how many)\b`)

// Classify routes a query to MATH or SEARCH. It is pure: no side effects,
// no external calls, bounded time over any input.
//
// A query routes to MATH when one of three rules fires, checked in order:
//
//  1. Expression shape: the whole trimmed query is built from digits,
//     decimal points, parentheses, whitespace, and the operators
//     + - * / ^ %, with at least one digit and at least one operator.
//  2. Inline arithmetic: a digit-operator-digit sequence appears anywhere.
//  3. Math keyword: an imperative phrase like "compute" or "what is"
//     together with an extractable expression containing an operator.
//
// Everything else routes to SEARCH, including a bare number with no
// operator ("42" is treated as a search term, not an expression).
func Classify(query string) Decision {
	trimmed := strings.TrimSpace(query)

	if isExpressionShaped(trimmed) {
		return Decision{
			Route:  RouteMath,
			Reason: "query is a bare arithmetic expression",
		}
	}

	if inlineArithmetic.MatchString(trimmed) {
		return Decision{
			Route:  RouteMath,
			Reason: "arithmetic sequence found in query",
		}
	}

	if kw := mathKeywords.FindString(trimmed); kw != "" {
		if expr, ok := mathexpr.Extract(trimmed); ok && containsOperator(expr) {
			return Decision{
				Route:  RouteMath,
				Reason: fmt.Sprintf("math keyword %q with evaluable expression", strings.ToLower(kw)),
			}
		}
	}

	return Decision{
		Route:  RouteSearch,
		Reason: "no arithmetic pattern detected",
	}
}

// isExpressionShaped reports whether the query consists solely of the
// restricted expression alphabet and contains both a digit and an operator.
// Parentheses and whitespace are allowed but do not count as operators, so
// a bare number like "(42)" still fails the operator requirement.
func isExpressionShaped(q string) bool {
	if q == "" {
		return false
	}
	hasDigit := false
	hasOperator := false
	for _, r := range q {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' || r == '%':
			hasOperator = true
		case r == '.' || r == '(' || r == ')':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return hasDigit && hasOperator
}

// containsOperator reports whether an extracted expression actually has a
// binary operator to evaluate, distinguishing "19^3 + 47" from a lone "2024".
func containsOperator(expr string) bool {
	for _, r := range expr {
		switch r {
		case '+', '-', '*', '/', '^', '%':
			return true
		}
	}
	return false
}
