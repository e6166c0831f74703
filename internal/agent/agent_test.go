// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/router"
	"github.com/jeranaias/askrun/internal/search"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type fakeProvider struct {
	results []search.Result
	err     error
	calls   int
}

func (f *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > maxResults {
		return f.results[:maxResults], nil
	}
	return f.results, nil
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
	gotSnip []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, query string, snippets []string) (string, error) {
	f.calls++
	f.gotSnip = snippets
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func testResults() []search.Result {
	return []search.Result{
		{Title: "First", Snippet: "alpha content", URL: "https://one.example"},
		{Title: "Second", Snippet: "beta content", URL: "https://two.example"},
		{Title: "Dup of first", Snippet: "gamma", URL: "https://one.example"},
		{Title: "Third", Snippet: "delta", URL: "https://three.example"},
		{Title: "Fourth", Snippet: "epsilon", URL: "https://four.example"},
	}
}

func newTestAgent(p *fakeProvider, s *fakeSummarizer) *Agent {
	return New(p, s)
}

// =============================================================================
// INPUT VALIDATION TESTS
// =============================================================================

func TestHandle_EmptyQuery(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})
	for _, q := range []string{"", "   ", "\n\t"} {
		if _, err := a.Handle(context.Background(), q); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Handle(%q) error = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestHandle_OversizedQuery(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})
	huge := strings.Repeat("x", MaxQueryLength+1)
	if _, err := a.Handle(context.Background(), huge); !errors.Is(err, ErrQueryTooLong) {
		t.Errorf("error = %v, want ErrQueryTooLong", err)
	}
}

// =============================================================================
// MATH PATH TESTS
// =============================================================================

func TestHandle_MathExpression(t *testing.T) {
	provider := &fakeProvider{}
	a := newTestAgent(provider, &fakeSummarizer{})

	resp, err := a.Handle(context.Background(), "(23*47)+199")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeMath {
		t.Errorf("Mode = %v, want ModeMath", resp.Mode)
	}
	if resp.Answer != "1280" {
		t.Errorf("Answer = %q, want %q", resp.Answer, "1280")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("math response has sources: %v", resp.Sources)
	}
	if provider.calls != 0 {
		t.Errorf("search provider was called %d times for a math query", provider.calls)
	}
}

func TestHandle_MathWithProse(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})

	resp, err := a.Handle(context.Background(), "Compute 19^3 + 47")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeMath {
		t.Fatalf("Mode = %v, want ModeMath", resp.Mode)
	}
	if resp.Answer != "6906" {
		t.Errorf("Answer = %q, want %q", resp.Answer, "6906")
	}
}

func TestHandle_MathDomainError(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})

	resp, err := a.Handle(context.Background(), "1/0")
	if err != nil {
		t.Fatalf("Handle returned error, want error-mode response: %v", err)
	}
	if resp.Mode != response.ModeError {
		t.Errorf("Mode = %v, want ModeError", resp.Mode)
	}
	if !strings.Contains(resp.Answer, "division by zero") {
		t.Errorf("Answer = %q, want mention of division by zero", resp.Answer)
	}
}

func TestHandle_MathSecurityViolation(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})

	// Routed to math because of the arithmetic pattern, but the extracted
	// run must still refuse the surrounding injection attempt.
	resp, err := a.Handle(context.Background(), "calc 1+1 and __import__('os')")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	// The extractable expression "1+1" evaluates; the injection never runs.
	if resp.Mode != response.ModeMath || resp.Answer != "2" {
		t.Errorf("got %v %q, want math 2", resp.Mode, resp.Answer)
	}
}

func TestHandleDetailed_Decision(t *testing.T) {
	a := newTestAgent(&fakeProvider{}, &fakeSummarizer{})

	out, err := a.HandleDetailed(context.Background(), "12 + 7")
	if err != nil {
		t.Fatalf("HandleDetailed failed: %v", err)
	}
	if out.Decision.Route != router.RouteMath {
		t.Errorf("Decision.Route = %v, want MATH", out.Decision.Route)
	}
	if out.Decision.Reason == "" {
		t.Error("Decision.Reason is empty")
	}
	if out.Response == nil || out.Response.Answer != "19" {
		t.Errorf("Response = %+v, want answer 19", out.Response)
	}
}

// =============================================================================
// SEARCH PATH TESTS
// =============================================================================

func TestHandle_SearchSummarized(t *testing.T) {
	provider := &fakeProvider{results: testResults()}
	summarizer := &fakeSummarizer{summary: "- a\n- b\n- c"}
	a := newTestAgent(provider, summarizer)

	resp, err := a.Handle(context.Background(), "Who won the 2024 Nobel Prize in Physics?")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeSearch {
		t.Fatalf("Mode = %v, want ModeSearch", resp.Mode)
	}
	if resp.Answer != "- a\n- b\n- c" {
		t.Errorf("Answer = %q", resp.Answer)
	}

	// Sources deduplicated in order, capped at 3.
	wantURLs := []string{"https://one.example", "https://two.example", "https://three.example"}
	if len(resp.Sources) != len(wantURLs) {
		t.Fatalf("got %d sources, want %d", len(resp.Sources), len(wantURLs))
	}
	for i, url := range wantURLs {
		if resp.Sources[i].URL != url {
			t.Errorf("source[%d] = %q, want %q", i, resp.Sources[i].URL, url)
		}
	}

	// Only the top 3 results feed the prompt.
	if len(summarizer.gotSnip) != 3 {
		t.Errorf("summarizer got %d snippets, want 3", len(summarizer.gotSnip))
	}
	if !strings.Contains(summarizer.gotSnip[0], "TITLE: First") {
		t.Errorf("first snippet = %q", summarizer.gotSnip[0])
	}
}

func TestHandle_SearchZeroResults(t *testing.T) {
	provider := &fakeProvider{results: nil}
	summarizer := &fakeSummarizer{summary: "unused"}
	a := newTestAgent(provider, summarizer)

	resp, err := a.Handle(context.Background(), "extremely obscure question")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeSearch {
		t.Errorf("Mode = %v, want ModeSearch", resp.Mode)
	}
	if resp.Answer != response.NoResultsAnswer {
		t.Errorf("Answer = %q, want no-results text", resp.Answer)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", resp.Sources)
	}
	if summarizer.calls != 0 {
		t.Errorf("summarizer called %d times with zero results", summarizer.calls)
	}
}

func TestHandle_SearchProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: search.ErrRateLimited}
	a := newTestAgent(provider, &fakeSummarizer{})

	resp, err := a.Handle(context.Background(), "any question at all")
	if err != nil {
		t.Fatalf("Handle returned error, want error-mode response: %v", err)
	}
	if resp.Mode != response.ModeError {
		t.Errorf("Mode = %v, want ModeError", resp.Mode)
	}
	if !strings.Contains(resp.Answer, "rate limited") {
		t.Errorf("Answer = %q, want rate-limit phrasing", resp.Answer)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("error response has sources: %v", resp.Sources)
	}
}

func TestHandle_SummarizationFailureDegrades(t *testing.T) {
	provider := &fakeProvider{results: testResults()}
	summarizer := &fakeSummarizer{err: errors.New("model unavailable")}
	a := newTestAgent(provider, summarizer)

	resp, err := a.Handle(context.Background(), "any question at all")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeSearch {
		t.Errorf("Mode = %v, want ModeSearch (degraded)", resp.Mode)
	}
	if !strings.Contains(resp.Answer, "First") || !strings.Contains(resp.Answer, "https://one.example") {
		t.Errorf("degraded answer missing raw results: %q", resp.Answer)
	}
	if len(resp.Sources) == 0 {
		t.Error("degraded response lost its sources")
	}
}

func TestHandle_SearchNotConfigured(t *testing.T) {
	provider := &fakeProvider{err: search.ErrNotConfigured}
	a := newTestAgent(provider, &fakeSummarizer{})

	resp, err := a.Handle(context.Background(), "any question at all")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Mode != response.ModeError {
		t.Errorf("Mode = %v, want ModeError", resp.Mode)
	}
	if !strings.Contains(resp.Answer, "Tavily API key") {
		t.Errorf("Answer = %q, want configuration hint", resp.Answer)
	}
}

// =============================================================================
// OPTION TESTS
// =============================================================================

func TestWithMaxResults(t *testing.T) {
	provider := &fakeProvider{results: testResults()}
	summarizer := &fakeSummarizer{summary: "- a\n- b\n- c"}
	a := newTestAgent(provider, summarizer).WithMaxResults(2)

	resp, err := a.Handle(context.Background(), "any question at all")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(resp.Sources) != 2 {
		t.Errorf("got %d sources, want 2 (maxResults capped the fetch)", len(resp.Sources))
	}
}
