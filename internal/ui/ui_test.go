// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/router"
	"github.com/jeranaias/askrun/internal/ui/styles"
)

func testExchange(resp *response.Structured, decision router.Decision) exchange {
	return exchange{
		query: "test query",
		outcome: &agent.Outcome{
			Decision: decision,
			Response: resp,
			Elapsed:  5 * time.Millisecond,
		},
		at: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

// ============================================================================
// EXCHANGE RENDERING
// ============================================================================

func TestRenderExchange_Math(t *testing.T) {
	theme := styles.NewTheme(80, 24)
	ex := testExchange(response.Math("42"),
		router.Decision{Route: router.RouteMath, Reason: "expression shape"})

	out := renderExchange(theme, ex, 80)

	for _, want := range []string{"test query", "MATH", "42", "expression shape"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[1]") {
		t.Error("math exchange should not list sources")
	}
}

func TestRenderExchange_SearchWithSources(t *testing.T) {
	theme := styles.NewTheme(80, 24)
	resp := response.Search("- point one\n- point two\n- point three", []response.Source{
		{Title: "Example", URL: "https://example.com/a"},
		{Title: "", URL: "https://example.com/b"},
	})
	ex := testExchange(resp, router.Decision{Route: router.RouteSearch, Reason: "default"})

	out := renderExchange(theme, ex, 80)

	for _, want := range []string{"SEARCH", "point one", "[1] Example", "https://example.com/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Untitled sources fall back to their URL.
	if !strings.Contains(out, "[2] https://example.com/b") {
		t.Errorf("untitled source not rendered by URL:\n%s", out)
	}
}

func TestRenderExchange_ErrorMode(t *testing.T) {
	theme := styles.NewTheme(80, 24)
	ex := testExchange(response.Error("Cannot divide by zero."),
		router.Decision{Route: router.RouteMath, Reason: "expression shape"})

	out := renderExchange(theme, ex, 80)

	if !strings.Contains(out, "ERROR") {
		t.Errorf("error badge missing:\n%s", out)
	}
	if !strings.Contains(out, "Cannot divide by zero.") {
		t.Errorf("error answer missing:\n%s", out)
	}
}

// ============================================================================
// MODEL BEHAVIOR
// ============================================================================

func newTestModel() *Model {
	cfg := config.Default()
	cfg.History.Enabled = false
	return New(cfg, agent.New(nil, nil), nil)
}

func sized(m *Model) *Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(*Model)
}

func TestModel_AnswerAppendsExchange(t *testing.T) {
	m := sized(newTestModel())
	m.state = StateWorking

	updated, _ := m.Update(answerMsg{
		query: "2+2",
		outcome: &agent.Outcome{
			Decision: router.Decision{Route: router.RouteMath, Reason: "expression shape"},
			Response: response.Math("4"),
		},
	})
	m = updated.(*Model)

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if len(m.exchanges) != 1 {
		t.Fatalf("exchanges = %d, want 1", len(m.exchanges))
	}
	if m.exchanges[0].query != "2+2" {
		t.Errorf("query = %q", m.exchanges[0].query)
	}
}

func TestModel_AnswerErrorSetsStatus(t *testing.T) {
	m := sized(newTestModel())
	m.state = StateWorking

	updated, _ := m.Update(answerMsg{query: "x", err: agent.ErrEmptyQuery})
	m = updated.(*Model)

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if len(m.exchanges) != 0 {
		t.Errorf("failed query should not append an exchange")
	}
	if m.statusMsg == "" {
		t.Error("expected a status message")
	}
}

func TestModel_EnterIgnoredWhileWorking(t *testing.T) {
	m := sized(newTestModel())
	m.state = StateWorking
	m.input.SetValue("another query")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	if cmd != nil {
		t.Error("enter while working should not start a command")
	}
	if m.input.Value() != "another query" {
		t.Error("input should be preserved while working")
	}
}

func TestModel_EmptyEnterIgnored(t *testing.T) {
	m := sized(newTestModel())
	m.input.SetValue("   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	if cmd != nil {
		t.Error("blank input should not start a command")
	}
	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
}

func TestModel_LastAnswer(t *testing.T) {
	m := newTestModel()
	if got := m.lastAnswer(); got != "" {
		t.Errorf("lastAnswer on empty transcript = %q", got)
	}

	m.exchanges = append(m.exchanges,
		testExchange(response.Math("4"), router.Decision{}),
		testExchange(response.Math("9"), router.Decision{}),
	)
	if got := m.lastAnswer(); got != "9" {
		t.Errorf("lastAnswer = %q, want %q", got, "9")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := sized(newTestModel())
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Errorf("key %v should quit", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %v returned %T, want tea.QuitMsg", key, cmd())
		}
	}
}
