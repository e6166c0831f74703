// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/askrun/internal/cloud"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/search"
)

// ============================================================================
// EXIT CODES
// ============================================================================

// Process exit codes. Scripts can branch on these instead of parsing
// error text.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitUsageError      = 2
	ExitConfigError     = 3
	ExitAuthError       = 4
	ExitNetworkError    = 5
	ExitNotFoundError   = 6
	ExitTimeoutError    = 7
	ExitValidationError = 8
)

// ============================================================================
// ERROR TYPES
// ============================================================================

// CommandError wraps a failure inside a command handler with the command
// name, so top-level output can say which command failed.
type CommandError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap supports errors.Is/As chains.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ValidationError indicates bad command line input: a missing argument,
// an unknown flag, a malformed value. Maps to ExitUsageError.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates a referenced resource does not exist
// (a history entry ID, a config key).
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ============================================================================
// EXIT CODE MAPPING
// ============================================================================

// GetExitCode maps an error to a process exit code. Typed errors and the
// provider sentinels are checked first, then broad categories.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFoundError
	}

	switch {
	case errors.Is(err, search.ErrAuthFailed), errors.Is(err, cloud.ErrAuthFailed):
		return ExitAuthError
	case errors.Is(err, search.ErrNotConfigured), errors.Is(err, cloud.ErrNotConfigured):
		return ExitConfigError
	case errors.Is(err, search.ErrRateLimited), errors.Is(err, cloud.ErrRateLimited):
		return ExitNetworkError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, history.ErrNotFound):
		return ExitNotFoundError
	}

	return ExitGeneralError
}

// ============================================================================
// ERROR DISPLAY
// ============================================================================

// DisplayError prints an error to stderr in the standard format.
// In JSON mode use DisplayErrorJSON instead.
func DisplayError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
}

// DisplayErrorJSON prints an error to stdout as a JSON envelope, so
// scripted callers always get parseable output.
func DisplayErrorJSON(command string, err error) {
	if err == nil {
		return
	}
	NewJSONErrorResponse(command, err.Error()).Print()
}

// HandleError displays an error appropriately for the output mode and
// returns the exit code. Callers pass the code to os.Exit.
func HandleError(command string, err error, jsonMode bool) int {
	if err == nil {
		return ExitSuccess
	}
	if jsonMode {
		DisplayErrorJSON(command, err)
	} else {
		DisplayError(err)
	}
	return GetExitCode(err)
}
