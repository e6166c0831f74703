// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the OpenRouter API.
const (
	// DefaultOpenRouterURL is the base URL for the OpenRouter API.
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 20 * time.Second

	// DefaultModel lets OpenRouter pick the model unless configured.
	DefaultModel = "openrouter/auto"

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is reused across all OpenRouter requests.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common OpenRouter errors.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("OpenRouter API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")

	// ErrInsufficientCredits indicates the account has insufficient credits.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrEmptyCompletion indicates the API returned no usable content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// OpenRouterError represents an error response from the OpenRouter API.
type OpenRouterError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *OpenRouterError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("OpenRouter error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("OpenRouter error (HTTP %d): %s", e.Status, e.Message)
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GetContent returns the content of the first choice, or empty string if none.
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// apiErrorResponse represents an error response from the API.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ============================================================================
// CLIENT
// ============================================================================

// OpenRouterClient is a client for communicating with the OpenRouter API.
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
	maxTokens  int
	siteURL    string
	siteName   string
}

// NewOpenRouterClient creates a new OpenRouter client with the given API key.
//
// The API key should be in the format "sk-or-..." as provided by OpenRouter.
// If the API key is empty, the client will still be created but Chat requests
// will fail with ErrNotConfigured.
func NewOpenRouterClient(apiKey string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultOpenRouterURL,
		httpClient: sharedHTTPClient,
		model:      DefaultModel,
		siteURL:    "https://askrun.local",
		siteName:   "askrun",
	}
}

// WithBaseURL sets a custom base URL for the API. Used by tests.
func (c *OpenRouterClient) WithBaseURL(url string) *OpenRouterClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithHTTPClient replaces the underlying HTTP client, overriding the
// shared pooled client and its timeout.
func (c *OpenRouterClient) WithHTTPClient(client *http.Client) *OpenRouterClient {
	if client != nil {
		c.httpClient = client
	}
	return c
}

// WithMaxTokens caps the completion length requested from the model.
func (c *OpenRouterClient) WithMaxTokens(maxTokens int) *OpenRouterClient {
	c.maxTokens = maxTokens
	return c
}

// SetModel sets the model to use for chat requests.
func (c *OpenRouterClient) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}

// GetModel returns the current model.
func (c *OpenRouterClient) GetModel() string {
	return c.model
}

// IsConfigured returns true if the client has an API key configured.
func (c *OpenRouterClient) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked version of the API key for display.
// SECURITY: Never exposes API key fragments - use fingerprint instead.
func (c *OpenRouterClient) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.keyFingerprint())
}

// keyFingerprint returns a SHA-256 based fingerprint of the API key for
// logging, without exposing key material.
func (c *OpenRouterClient) keyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// setHeaders sets the required headers for OpenRouter API requests.
func (c *OpenRouterClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "askrun/0.1.0")

	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.siteName != "" {
		req.Header.Set("X-Title", c.siteName)
	}
}

// ============================================================================
// CHAT
// ============================================================================

// Chat performs a chat completion request with the given messages.
//
// A transient failure (rate limit, 5xx, network fault) is retried exactly
// once, immediately. Auth, credit, and model errors are returned as-is.
func (c *OpenRouterClient) Chat(ctx context.Context, messages []ChatMessage) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	url := c.baseURL + "/chat/completions"
	reqBody := ChatRequest{
		Model:     c.model,
		Messages:  messages,
		Stream:    false,
		MaxTokens: c.maxTokens,
	}

	response, err := c.doRequest(ctx, url, reqBody)
	if err != nil && c.isRetryable(err) {
		log.Printf("cloud: transient failure, retrying once: %v", err)
		response, err = c.doRequest(ctx, url, reqBody)
	}
	return response, err
}

// Generate performs a chat completion with a single user prompt.
func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (*ChatResponse, error) {
	return c.Chat(ctx, []ChatMessage{NewUserMessage(prompt)})
}

// doRequest performs a single HTTP request to the chat completions endpoint.
func (c *OpenRouterClient) doRequest(ctx context.Context, requestURL string, reqBody ChatRequest) (*ChatResponse, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear Authorization header immediately after request to
	// keep it out of any later logging of the request object.
	req.Header.Del("Authorization")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("cloud: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

// readResponse reads the response body with a size cap.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to appropriate Go errors.
func (c *OpenRouterClient) handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		orErr := &OpenRouterError{
			Code:    apiErr.Error.Code,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}

		switch statusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrAuthFailed, orErr.Message)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %s", ErrInsufficientCredits, orErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrModelNotFound, orErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, orErr.Message)
		default:
			return orErr
		}
	}

	// Fallback for unparseable error responses.
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusPaymentRequired:
		return ErrInsufficientCredits
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &OpenRouterError{Message: string(body), Status: statusCode}
	}
}

// isRetryable determines if an error should trigger the single retry.
func (c *OpenRouterClient) isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrNotConfigured) ||
		errors.Is(err, ErrModelNotFound) || errors.Is(err, ErrInsufficientCredits) {
		return false
	}
	var orErr *OpenRouterError
	if errors.As(err, &orErr) {
		return orErr.Status >= 500 && orErr.Status < 600
	}
	// Transport-level failure.
	return true
}

// ValidateAPIKey checks if the API key format appears valid.
// Note: This doesn't verify the key with OpenRouter, just checks the format.
func ValidateAPIKey(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)

	// OpenRouter keys start with "sk-or-".
	if !strings.HasPrefix(apiKey, "sk-or-") {
		return false
	}

	// Minimum length check (sk-or- prefix + at least 32 chars).
	if len(apiKey) < 38 {
		return false
	}

	// Basic entropy check to reject obvious test keys like "sk-or-aaaa...".
	uniqueChars := make(map[rune]bool)
	for _, char := range apiKey[6:] {
		uniqueChars[char] = true
	}
	return len(uniqueChars) >= 10
}
