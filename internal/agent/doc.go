// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent is the core of askrun: it takes a raw query and returns a
// validated structured response.
//
// Control flow per query: validate -> route (router.Classify) -> evaluate
// (mathexpr) or search-and-summarize (search + cloud) -> build
// (response.Sanitize). Every failure past input validation resolves to an
// error-mode or degraded response; the agent never panics and never
// surfaces raw provider error text to callers.
//
// The agent holds no mutable state across queries. Each Handle call is
// independent, so a single Agent is safe for concurrent use as long as
// its injected providers are.
package agent
