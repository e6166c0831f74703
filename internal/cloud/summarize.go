// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"fmt"
	"strings"
)

// ============================================================================
// SUMMARIZER
// ============================================================================

// Summarizer condenses retrieved search snippets into a short, sourced
// answer. The one real implementation is OpenRouterClient; tests substitute
// canned doubles.
type Summarizer interface {
	Summarize(ctx context.Context, query string, snippets []string) (string, error)
}

// summarizeSystemPrompt constrains the model to the retrieved evidence.
const summarizeSystemPrompt = "You are a concise researcher. Using ONLY the information " +
	"in the snippets provided, write EXACTLY three bullet points answering the user's " +
	"query. Each bullet must be attributable to at least one snippet. No speculation. " +
	"If the evidence is insufficient, say so."

// Summarize asks the configured model for a three-bullet summary of the
// snippets. Returns ErrEmptyCompletion when the model produces no text,
// so callers can degrade to raw results.
func (c *OpenRouterClient) Summarize(ctx context.Context, query string, snippets []string) (string, error) {
	userPrompt := fmt.Sprintf("USER QUERY:\n%s\n\nSNIPPETS:\n%s",
		query, strings.Join(snippets, "\n\n---\n\n"))

	resp, err := c.Chat(ctx, []ChatMessage{
		NewSystemMessage(summarizeSystemPrompt),
		NewUserMessage(userPrompt),
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(resp.GetContent())
	if summary == "" {
		return "", ErrEmptyCompletion
	}
	return summary, nil
}
