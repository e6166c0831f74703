// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "testing"

// =============================================================================
// MATH ROUTING TESTS
// =============================================================================

func TestClassify_Math(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"bare expression", "(23*47)+199"},
		{"spaced expression", "12 + 7"},
		{"power", "19^3 + 47"},
		{"decimals", "3.5 * 2.25"},
		{"modulo", "10 % 3"},
		{"division", "100/4"},
		{"compute keyword", "Compute 19^3 + 47"},
		{"calculate keyword", "calculate 15 * 4 for me"},
		{"what is arithmetic", "what is 2+2"},
		{"embedded arithmetic", "the answer to 6*7 please"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.query)
			if d.Route != RouteMath {
				t.Errorf("Classify(%q) = %v (%s), want MATH", tc.query, d.Route, d.Reason)
			}
			if d.Reason == "" {
				t.Error("Decision has empty Reason")
			}
		})
	}
}

// =============================================================================
// SEARCH ROUTING TESTS
// =============================================================================

func TestClassify_Search(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"open question", "Who won the 2024 Nobel Prize in Physics?"},
		{"plain prose", "latest developments in fusion energy"},
		{"bare number", "42"},
		{"parenthesized number", "(42)"},
		{"year only", "what happened in 1969"},
		{"keyword without expression", "what is the capital of France"},
		{"how many prose", "how many moons does Jupiter have"},
		{"empty", ""},
		{"whitespace", "   "},
		{"hyphenated words", "state-of-the-art models"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.query)
			if d.Route != RouteSearch {
				t.Errorf("Classify(%q) = %v (%s), want SEARCH", tc.query, d.Route, d.Reason)
			}
		})
	}
}

// =============================================================================
// PURITY TESTS
// =============================================================================

func TestClassify_Deterministic(t *testing.T) {
	queries := []string{
		"(23*47)+199",
		"Who won the 2024 Nobel Prize in Physics?",
		"Compute 19^3 + 47",
		"42",
	}
	for _, q := range queries {
		first := Classify(q)
		second := Classify(q)
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %+v vs %+v", q, first, second)
		}
	}
}

func TestRoute_String(t *testing.T) {
	if RouteMath.String() != "MATH" {
		t.Errorf("RouteMath.String() = %q, want MATH", RouteMath.String())
	}
	if RouteSearch.String() != "SEARCH" {
		t.Errorf("RouteSearch.String() = %q, want SEARCH", RouteSearch.String())
	}
	if Route(99).String() != "Route(99)" {
		t.Errorf("unknown route String() = %q", Route(99).String())
	}
}
