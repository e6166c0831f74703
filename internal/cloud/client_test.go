// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":    "gen-test",
		"model": "openrouter/auto",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Success(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-or-test" {
			t.Errorf("Authorization = %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(completionBody("hello"))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
	resp, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.GetContent() != "hello" {
		t.Errorf("content = %q, want %q", resp.GetContent(), "hello")
	}
	if gotReq.Model != DefaultModel {
		t.Errorf("model = %q, want %q", gotReq.Model, DefaultModel)
	}
	if gotReq.Stream {
		t.Error("request has stream=true, want false")
	}
}

func TestChat_NotConfigured(t *testing.T) {
	client := NewOpenRouterClient("")
	_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestChat_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		expected error
	}{
		{"auth failed", http.StatusUnauthorized, ErrAuthFailed},
		{"insufficient credits", http.StatusPaymentRequired, ErrInsufficientCredits},
		{"model not found", http.StatusNotFound, ErrModelNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": "err", "message": "nope"},
				})
			}))
			defer server.Close()

			client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
			_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
			if !errors.Is(err, tc.expected) {
				t.Errorf("error = %v, want %v", err, tc.expected)
			}
		})
	}
}

func TestChat_RetriesOnceOnServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(completionBody("recovered"))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
	resp, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if err != nil {
		t.Fatalf("Chat failed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2 (one retry)", calls)
	}
	if resp.GetContent() != "recovered" {
		t.Errorf("content = %q", resp.GetContent())
	}
}

func TestChat_NoRetryOnAuthFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
	_, err := client.Chat(context.Background(), []ChatMessage{NewUserMessage("hi")})
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("error = %v, want ErrAuthFailed", err)
	}
	if calls != 1 {
		t.Errorf("auth failure was retried: %d calls", calls)
	}
}

// =============================================================================
// SUMMARIZE TESTS
// =============================================================================

func TestSummarize(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(completionBody("- a\n- b\n- c"))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
	snippets := []string{
		"TITLE: First\nSNIPPET: alpha\nURL: https://one.example",
		"TITLE: Second\nSNIPPET: beta\nURL: https://two.example",
	}
	summary, err := client.Summarize(context.Background(), "my query", snippets)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "- a\n- b\n- c" {
		t.Errorf("summary = %q", summary)
	}

	if len(gotReq.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "EXACTLY three bullet points") {
		t.Error("system prompt missing three-bullet instruction")
	}
	if !strings.Contains(gotReq.Messages[1].Content, "my query") {
		t.Error("user prompt missing query text")
	}
	if !strings.Contains(gotReq.Messages[1].Content, "https://two.example") {
		t.Error("user prompt missing snippet content")
	}
}

func TestSummarize_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionBody("   "))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-or-test").WithBaseURL(server.URL)
	_, err := client.Summarize(context.Background(), "query", []string{"snippet"})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion", err)
	}
}

// =============================================================================
// KEY HANDLING TESTS
// =============================================================================

func TestValidateAPIKey(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid", "sk-or-v1-abcdef0123456789abcdef0123456789", true},
		{"wrong prefix", "sk-abcdef0123456789abcdef0123456789", false},
		{"too short", "sk-or-abc", false},
		{"low entropy", "sk-or-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAPIKey(tc.key); got != tc.valid {
				t.Errorf("ValidateAPIKey(%q) = %v, want %v", tc.key, got, tc.valid)
			}
		})
	}
}

func TestAPIKeyMasked(t *testing.T) {
	client := NewOpenRouterClient("sk-or-v1-secretsecretsecret")
	masked := client.APIKeyMasked()
	if strings.Contains(masked, "secret") {
		t.Errorf("masked key leaks material: %q", masked)
	}
	if !strings.Contains(masked, "REDACTED") {
		t.Errorf("masked key = %q, want [REDACTED...]", masked)
	}

	empty := NewOpenRouterClient("")
	if empty.APIKeyMasked() != "[not set]" {
		t.Errorf("empty key masked = %q, want [not set]", empty.APIKeyMasked())
	}
}
