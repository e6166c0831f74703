// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides which handler answers a query.
//
// Classification is a pure, total function over any string: a query either
// looks like arithmetic (routed to the expression evaluator) or it does not
// (routed to the search pipeline). No I/O, no external calls, bounded time.
//
// The heuristic is deliberately simple and is the swap point for any future
// classifier: anything implementing func(string) Decision can replace it
// without changing callers.
package router
