// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"errors"
	"fmt"
)

// ============================================================================
// PROVIDER INTERFACE
// ============================================================================

// Result is a single item returned by a Provider.
type Result struct {
	// Title is the document title.
	Title string `json:"title"`
	// Snippet is the extracted content fragment.
	Snippet string `json:"snippet"`
	// URL locates the document.
	URL string `json:"url"`
}

// Provider executes a query against an external search service.
// Implementations must honor the context for cancellation and return at
// most maxResults results.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// ============================================================================
// ERRORS
// ============================================================================

// Error variables for common search provider failures.
var (
	// ErrNotConfigured indicates the provider API key is not set.
	ErrNotConfigured = errors.New("search provider not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired API key).
	ErrAuthFailed = errors.New("search authentication failed")

	// ErrRateLimited indicates the provider rejected the request for quota reasons.
	ErrRateLimited = errors.New("search rate limited")
)

// ProviderError represents an unexpected error response from the provider.
type ProviderError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider error (HTTP %d): %s", e.Status, e.Message)
}

// isTransient reports whether an error is worth the single immediate retry:
// rate limiting, 5xx responses, and plain network faults qualify; auth and
// configuration errors never do, and neither does context cancellation.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrAuthFailed) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Status >= 500 && pe.Status < 600
	}
	// Anything else here is a transport-level failure.
	return true
}
