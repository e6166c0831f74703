// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the Tavily API.
const (
	// DefaultTavilyURL is the search endpoint for the Tavily API.
	DefaultTavilyURL = "https://api.tavily.com/search"

	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxResults is the number of top results requested when the
	// caller passes zero.
	DefaultMaxResults = 5

	// maxResponseSize caps the response body read.
	// SECURITY: Response size limit prevents memory exhaustion.
	maxResponseSize = 2 * 1024 * 1024 // 2MB
)

// sharedHTTPClient is reused across all Tavily requests.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// ============================================================================
// TAVILY CLIENT
// ============================================================================

// TavilyClient implements Provider against the Tavily search API.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	depth      string
	httpClient *http.Client
}

// tavilyRequest is the POST body for the search endpoint.
type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

// tavilyResponse is the subset of the response body we consume.
type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// NewTavilyClient creates a Tavily client with the given API key.
//
// If the key is empty the client is still created but Search calls fail
// with ErrNotConfigured.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultTavilyURL,
		depth:      "basic",
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom endpoint URL. Used by tests.
func (c *TavilyClient) WithBaseURL(url string) *TavilyClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithDepth sets Tavily's search depth ("basic" or "advanced").
func (c *TavilyClient) WithDepth(depth string) *TavilyClient {
	if depth != "" {
		c.depth = depth
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client, overriding the
// shared pooled client and its timeout.
func (c *TavilyClient) WithHTTPClient(client *http.Client) *TavilyClient {
	if client != nil {
		c.httpClient = client
	}
	return c
}

// IsConfigured returns true if the client has an API key.
func (c *TavilyClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Search posts the query to Tavily and returns up to maxResults results.
//
// A transient failure (network fault, rate limit, 5xx) is retried exactly
// once, immediately. Auth and configuration failures are returned as-is.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	results, err := c.doSearch(ctx, query, maxResults)
	if err != nil && isTransient(err) {
		log.Printf("search: transient failure, retrying once: %v", err)
		results, err = c.doSearch(ctx, query, maxResults)
	}
	return results, err
}

// doSearch performs one request/response cycle.
func (c *TavilyClient) doSearch(ctx context.Context, query string, maxResults int) ([]Result, error) {
	reqBody := tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: c.depth,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("search: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	var decoded tavilyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]Result, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, Result{Title: r.Title, Snippet: r.Content, URL: r.URL})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}

// handleErrorResponse converts HTTP error responses to typed errors.
func (c *TavilyClient) handleErrorResponse(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (HTTP %d)", ErrAuthFailed, statusCode)
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &ProviderError{Status: statusCode, Message: strings.TrimSpace(string(body))}
	}
}

// readResponse reads the body with a size cap.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", maxResponseSize)
	}
	return body, nil
}
