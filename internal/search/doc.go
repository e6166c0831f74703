// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search retrieves web results for a query from an external
// search provider.
//
// The Provider interface is deliberately narrow (one call, canned-result
// test doubles are trivial) with one real implementation, the Tavily API
// client. Failures map to typed errors so callers can distinguish a
// missing key from quota exhaustion from a transient network fault.
//
// Transient failures are retried at most once, immediately; anything
// beyond that is the caller's problem to degrade from.
package search
