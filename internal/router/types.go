// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "fmt"

// ============================================================================
// ROUTE TYPE
// ============================================================================

// Route is the binary decision of which handler processes a query.
type Route int

const (
	// RouteSearch sends the query to the search/summarize pipeline.
	// It is the zero value: when in doubt, search.
	RouteSearch Route = iota
	// RouteMath sends the query to the arithmetic evaluator.
	RouteMath
)

// String returns the human-readable name of the route.
func (r Route) String() string {
	switch r {
	case RouteSearch:
		return "SEARCH"
	case RouteMath:
		return "MATH"
	default:
		return fmt.Sprintf("Route(%d)", r)
	}
}

// ============================================================================
// DECISION
// ============================================================================

// Decision is the routing outcome for a single query.
type Decision struct {
	// Route is the selected handler.
	Route Route `json:"route"`
	// Reason explains which rule fired, for logging and the
	// routing line shown by the CLI.
	Reason string `json:"reason"`
}

// String returns a one-line summary of the decision.
func (d Decision) String() string {
	return fmt.Sprintf("%s: %s", d.Route, d.Reason)
}
