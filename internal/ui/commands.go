// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/util"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// askCmd runs a query through the agent off the update loop. The agent
// owns per-call timeouts, so no deadline is set here.
func askCmd(a *agent.Agent, store *history.Store, query string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := a.HandleDetailed(context.Background(), query)
		if err != nil {
			return answerMsg{query: query, err: err}
		}
		recordEntry(store, query, outcome.Response)
		return answerMsg{query: query, outcome: outcome}
	}
}

// recordEntry persists an exchange, logging rather than surfacing
// failures. The answer on screen matters more than the bookkeeping.
func recordEntry(store *history.Store, query string, resp *response.Structured) {
	if store == nil {
		return
	}
	if _, err := store.Add(query, resp); err != nil {
		log.Printf("ui: history record failed: %v", err)
	}
}

// copyCmd copies text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// clearHistoryCmd wipes the persisted history store.
func clearHistoryCmd(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyClearedMsg{}
		}
		return historyClearedMsg{err: store.Clear()}
	}
}

// exportCmd writes a response as JSON under the config directory.
func exportCmd(resp *response.Structured) tea.Cmd {
	return func() tea.Msg {
		dir, err := config.ConfigDir()
		if err != nil {
			return exportedMsg{err: err}
		}
		data, err := resp.JSON()
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, "exports",
			fmt.Sprintf("answer-%s.json", time.Now().Format("20060102-150405")))
		if err := util.AtomicWriteFileWithDir(path, data, 0644, 0755); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}
