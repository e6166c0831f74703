// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/askrun/internal/response"
)

// ============================================================================
// JSON OUTPUT ENVELOPE
// ============================================================================

// JSONResponse is the envelope for all --json output. Every command emits
// this shape so scripts can parse success and failure uniformly.
type JSONResponse struct {
	// Success indicates whether the command completed.
	Success bool `json:"success"`
	// Command is the command that produced this response.
	Command string `json:"command"`
	// Data holds the command-specific payload on success.
	Data any `json:"data,omitempty"`
	// Error holds the failure message on error.
	Error string `json:"error,omitempty"`
	// Timestamp is when the response was produced (RFC 3339).
	Timestamp string `json:"timestamp"`
}

// NewJSONResponse creates a success envelope.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Command:   command,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewJSONErrorResponse creates a failure envelope.
func NewJSONErrorResponse(command, errMsg string) *JSONResponse {
	return &JSONResponse{
		Success:   false,
		Command:   command,
		Error:     errMsg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// String renders the envelope as indented JSON.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		// Marshaling the envelope itself should not fail; fall back to a
		// minimal literal so the caller still gets valid JSON.
		return fmt.Sprintf(`{"success":false,"error":"json encoding failed: %s"}`, err)
	}
	return string(data)
}

// Print writes the envelope to stdout.
func (r *JSONResponse) Print() {
	fmt.Println(r.String())
}

// ============================================================================
// COMMAND PAYLOADS
// ============================================================================

// AskData is the payload for ask and chat responses in JSON mode.
type AskData struct {
	// Query is the query as handled.
	Query string `json:"query"`
	// Route is the routing decision (MATH or SEARCH).
	Route string `json:"route"`
	// Reason is the routing rule that fired.
	Reason string `json:"reason"`
	// Mode is the response mode (math, search, error).
	Mode string `json:"mode"`
	// Answer is the answer text.
	Answer string `json:"answer"`
	// Sources lists the references behind a search answer.
	Sources []response.Source `json:"sources"`
	// DurationMs is the total handling time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// HistoryEntryData is one history entry in JSON mode.
type HistoryEntryData struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Query     string            `json:"query"`
	Mode      string            `json:"mode"`
	Answer    string            `json:"answer"`
	Sources   []response.Source `json:"sources"`
}

// HistoryData is the payload for history list and search output.
type HistoryData struct {
	Entries []HistoryEntryData `json:"entries"`
	Count   int                `json:"count"`
}

// ConfigData is the payload for config show output. Secret values are
// masked before they reach this struct.
type ConfigData struct {
	Path   string            `json:"path"`
	Values map[string]string `json:"values"`
}

// VersionData is the payload for version output.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}
