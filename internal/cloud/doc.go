// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud provides the OpenRouter language-model client used to
// summarize search results.
//
// OpenRouter exposes multiple LLM providers behind a single
// chat-completions API. The client here is a thin hand-rolled HTTP layer:
// typed errors for the auth/quota/credit failure modes, a shared pooled
// transport, size-capped response reads, and at most one immediate retry
// on transient failures.
//
// The Summarizer interface is what the rest of the application consumes;
// OpenRouterClient is its one real implementation, and tests substitute
// canned doubles.
package cloud
