// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathexpr

import (
	"strings"
	"unicode"
)

// ============================================================================
// EXPRESSION EXTRACTION
// ============================================================================

// Extract finds the longest arithmetic run inside free-form text, so that
// queries like "Compute 19^3 + 47" evaluate their numeric portion. A run
// is a contiguous stretch of numbers (with optional scientific exponent),
// the operators + - * / % ^, parentheses, and whitespace. Exponent markers
// are only kept as part of a number; a lone letter breaks the run.
//
// The second return value is false when the text contains no digit at all,
// meaning there is nothing to evaluate.
func Extract(text string) (string, bool) {
	runes := []rune(text)
	best := ""
	bestDigits := false

	i := 0
	for i < len(runes) {
		end := scanRun(runes, i)
		if end == i {
			i++
			continue
		}
		run := strings.TrimSpace(string(runes[i:end]))
		if containsDigit(run) && len(run) > len(best) {
			best = run
			bestDigits = true
		}
		i = end
	}
	return best, bestDigits
}

// scanRun returns the end of the arithmetic run starting at i, or i itself
// when no run starts there.
func scanRun(runes []rune, i int) int {
	j := i
	for j < len(runes) {
		r := runes[j]
		switch {
		case unicode.IsSpace(r):
			j++
		case isDigit(r) || r == '.':
			j = scanNumber(runes, j)
		case isOperatorRune(r):
			j++
		default:
			return j
		}
	}
	return j
}

// scanNumber consumes a numeric literal starting at j, including a
// scientific exponent when digits follow the marker.
func scanNumber(runes []rune, j int) int {
	for j < len(runes) && (isDigit(runes[j]) || runes[j] == '.') {
		j++
	}
	if j < len(runes) && (runes[j] == 'e' || runes[j] == 'E') {
		k := j + 1
		if k < len(runes) && (runes[k] == '+' || runes[k] == '-') {
			k++
		}
		if k < len(runes) && isDigit(runes[k]) {
			for k < len(runes) && isDigit(runes[k]) {
				k++
			}
			return k
		}
	}
	return j
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '^', '(', ')':
		return true
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if isDigit(r) {
			return true
		}
	}
	return false
}
