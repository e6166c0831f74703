// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jeranaias/askrun/internal/cloud"
	"github.com/jeranaias/askrun/internal/mathexpr"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/router"
	"github.com/jeranaias/askrun/internal/search"
	"github.com/jeranaias/askrun/internal/util"
)

// Configuration constants for query handling.
const (
	// MaxQueryLength bounds accepted query size (100KB).
	MaxQueryLength = 100 * 1024

	// DefaultMaxResults is how many top search results to request.
	DefaultMaxResults = 5

	// DefaultCallTimeout bounds each external provider call.
	DefaultCallTimeout = 15 * time.Second

	// maxSources caps the source list attached to a search answer.
	maxSources = 3

	// maxSnippets caps how many results feed the summarization prompt.
	maxSnippets = 3

	// maxSnippetTitle and maxSnippetContent cap snippet fields before
	// they enter the prompt.
	maxSnippetTitle   = 120
	maxSnippetContent = 600
)

// Error variables for caller-side input validation. Everything past
// validation resolves to a structured response instead of an error.
var (
	// ErrEmptyQuery indicates a blank or whitespace-only query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrQueryTooLong indicates the query exceeds MaxQueryLength.
	ErrQueryTooLong = fmt.Errorf("query exceeds maximum length of %d bytes", MaxQueryLength)
)

// ============================================================================
// AGENT
// ============================================================================

// Agent routes queries and produces structured responses. Construct with
// New and the provider handles; zero-value Agents are not usable.
type Agent struct {
	provider    search.Provider
	summarizer  cloud.Summarizer
	maxResults  int
	callTimeout time.Duration
}

// Outcome pairs a response with the routing decision that produced it,
// for callers that display the route (the CLI's routing line, the TUI
// status bar).
type Outcome struct {
	// Decision is the routing decision for the query.
	Decision router.Decision
	// Response is the validated structured response.
	Response *response.Structured
	// Elapsed is the total handling time.
	Elapsed time.Duration
}

// New creates an Agent with the given provider handles and defaults:
// top 5 results, 15 second per-call timeout.
func New(provider search.Provider, summarizer cloud.Summarizer) *Agent {
	return &Agent{
		provider:    provider,
		summarizer:  summarizer,
		maxResults:  DefaultMaxResults,
		callTimeout: DefaultCallTimeout,
	}
}

// WithMaxResults sets how many top results to request from the search
// provider.
func (a *Agent) WithMaxResults(n int) *Agent {
	if n > 0 {
		a.maxResults = n
	}
	return a
}

// WithCallTimeout sets the per-provider-call timeout.
func (a *Agent) WithCallTimeout(d time.Duration) *Agent {
	if d > 0 {
		a.callTimeout = d
	}
	return a
}

// Handle answers a single query. It is the core public entry point: the
// CLI, chat loop, and TUI all call it.
//
// The returned error is non-nil only for invalid input (empty or oversized
// query). Handler failures come back as an error-mode or degraded
// response, never as an error value.
func (a *Agent) Handle(ctx context.Context, query string) (*response.Structured, error) {
	out, err := a.HandleDetailed(ctx, query)
	if err != nil {
		return nil, err
	}
	return out.Response, nil
}

// HandleDetailed is Handle plus the routing decision and timing.
func (a *Agent) HandleDetailed(ctx context.Context, query string) (*Outcome, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	start := time.Now()
	decision := router.Classify(query)
	log.Printf("agent: routed %s (%s): %s", decision.Route, decision.Reason, truncateForLog(query))

	var resp *response.Structured
	switch decision.Route {
	case router.RouteMath:
		resp = a.runMath(query)
	default:
		resp = a.runSearch(ctx, query)
	}

	return &Outcome{
		Decision: decision,
		Response: resp,
		Elapsed:  time.Since(start),
	}, nil
}

// validateQuery rejects input the router should never see.
func validateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	if util.Flatten(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// truncateForLog keeps log lines short for very long queries.
func truncateForLog(query string) string {
	return util.TruncateRunes(util.Flatten(query), 80)
}

// ============================================================================
// MATH PATH
// ============================================================================

// runMath extracts and evaluates the arithmetic portion of the query.
// Evaluation failures are terminal for the query and come back as
// error-mode responses with a short human-readable message.
func (a *Agent) runMath(query string) *response.Structured {
	expr, ok := mathexpr.Extract(query)
	if !ok {
		return response.Error("No math expression found in the query.")
	}

	value, err := mathexpr.Eval(expr)
	if err != nil {
		log.Printf("agent: evaluation failed: %v", err)
		return response.Error(mathFailureMessage(err))
	}
	return response.Math(mathexpr.FormatResult(value))
}

// mathFailureMessage phrases an evaluator error for display. Raw error
// text stays in the logs.
func mathFailureMessage(err error) string {
	var de *mathexpr.DomainError
	switch {
	case mathexpr.IsSecurityError(err):
		return "The expression contains a token that is not allowed."
	case errors.As(err, &de):
		return "The expression is mathematically undefined: " + de.Msg + "."
	case errors.Is(err, mathexpr.ErrEmpty):
		return "No math expression found in the query."
	default:
		return "The expression could not be parsed."
	}
}

// ============================================================================
// SEARCH PATH
// ============================================================================

// runSearch retrieves top results and summarizes them. Degradation order:
// zero results produce a graceful no-results answer; a summarization
// failure falls back to listing the raw top results; only a failed search
// call yields an error-mode response.
func (a *Agent) runSearch(ctx context.Context, query string) *response.Structured {
	searchCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	results, err := a.provider.Search(searchCtx, query, a.maxResults)
	if err != nil {
		log.Printf("agent: search failed: %v", err)
		return response.Error(searchFailureMessage(err))
	}
	if len(results) == 0 {
		return response.Search("", nil)
	}

	sources := collectSources(results)
	snippets := buildSnippets(results)

	sumCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	summary, err := a.summarizer.Summarize(sumCtx, query, snippets)
	if err != nil {
		log.Printf("agent: summarization failed, degrading to raw results: %v", err)
		return response.Search(rawResultsAnswer(results), sources)
	}
	return response.Search(summary, sources)
}

// searchFailureMessage phrases a provider error for display.
func searchFailureMessage(err error) string {
	switch {
	case errors.Is(err, search.ErrNotConfigured):
		return "Search is not configured: set the Tavily API key."
	case errors.Is(err, search.ErrAuthFailed):
		return "Search failed: the Tavily API key was rejected."
	case errors.Is(err, search.ErrRateLimited):
		return "Search failed: rate limited by the provider. Try again shortly."
	case errors.Is(err, context.DeadlineExceeded):
		return "Search failed: the provider did not respond in time."
	default:
		return "Search failed: the provider could not be reached."
	}
}

// collectSources gathers result URLs, deduplicated in original order and
// capped at maxSources.
func collectSources(results []search.Result) []response.Source {
	sources := make([]response.Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, response.Source{Title: r.Title, URL: r.URL})
	}
	sources = response.DedupeSources(sources)
	if len(sources) > maxSources {
		sources = sources[:maxSources]
	}
	return sources
}

// buildSnippets packs the top results into prompt blocks, with titles and
// content capped and flattened to single lines.
func buildSnippets(results []search.Result) []string {
	if len(results) > maxSnippets {
		results = results[:maxSnippets]
	}
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		title := util.TruncateRunesNoEllipsis(util.Flatten(r.Title), maxSnippetTitle)
		content := util.TruncateRunesNoEllipsis(util.Flatten(r.Snippet), maxSnippetContent)
		snippets = append(snippets, fmt.Sprintf("TITLE: %s\nSNIPPET: %s\nURL: %s", title, content, r.URL))
	}
	return snippets
}

// rawResultsAnswer lists the top results as plain title + URL lines, the
// degraded answer used when summarization is unavailable.
func rawResultsAnswer(results []search.Result) string {
	answer := "Summarization is unavailable. Top results:\n"
	limit := len(results)
	if limit > maxSnippets {
		limit = maxSnippets
	}
	for _, r := range results[:limit] {
		answer += fmt.Sprintf("- %s (%s)\n", util.Flatten(r.Title), r.URL)
	}
	return answer
}
