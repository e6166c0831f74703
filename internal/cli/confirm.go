// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ============================================================================
// CONFIRMATION HANDLING
// ============================================================================

// RequireConfirmation checks whether a destructive action may proceed.
//
// Flow:
//  1. If --confirm was passed, proceed without prompting.
//  2. In JSON mode, --confirm is required (no interactive prompts).
//  3. If stdin is not a TTY, --confirm is required (cannot prompt).
//  4. Otherwise prompt [y/N] and read the answer.
func RequireConfirmation(confirmFlag bool, action string, jsonMode bool) (bool, error) {
	if confirmFlag {
		return true, nil
	}

	if jsonMode {
		return false, fmt.Errorf("confirmation required: use --confirm for destructive actions in JSON mode")
	}

	if !IsTTY() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal; use --confirm")
	}

	fmt.Printf("Are you sure you want to %s? [y/N]: ", action)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}

// ShowCancellationMessage prints the standard cancellation line.
func ShowCancellationMessage() {
	fmt.Println(DimStyle.Render("Cancelled."))
}
