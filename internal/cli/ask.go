// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/cloud"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/response"
	"github.com/jeranaias/askrun/internal/search"
)

// ============================================================================
// MARKDOWN RENDERING
// ============================================================================

// markdownRenderer renders answers as styled markdown on a TTY. A nil
// renderer means plain text output.
var markdownRenderer *glamour.TermRenderer

func init() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		// Fall back to plain text; rendering is cosmetic.
		markdownRenderer = nil
		return
	}
	markdownRenderer = renderer
}

// renderMarkdown renders text as markdown, returning it unchanged when
// rendering is unavailable or fails.
func renderMarkdown(text string) string {
	if markdownRenderer == nil {
		return text
	}
	rendered, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}

// ============================================================================
// AGENT CONSTRUCTION
// ============================================================================

// NewAgentFromConfig wires the search provider and summarizer from
// configuration. Unconfigured keys are allowed: math queries still work,
// and search queries come back as error-mode responses explaining the
// missing key.
func NewAgentFromConfig(cfg *config.Config) *agent.Agent {
	provider := search.NewTavilyClient(cfg.Search.TavilyKey).
		WithDepth(cfg.Search.Depth)

	summarizer := cloud.NewOpenRouterClient(cfg.Cloud.OpenRouterKey)
	summarizer.SetModel(cfg.Cloud.Model)
	if cfg.Cloud.MaxTokens > 0 {
		summarizer.WithMaxTokens(cfg.Cloud.MaxTokens)
	}

	return agent.New(provider, summarizer).
		WithMaxResults(cfg.Search.MaxResults).
		WithCallTimeout(cfg.Limits.RequestTimeout())
}

// OpenHistory opens the history store when history is enabled. A nil
// store with a nil error means history is off.
func OpenHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	return store.WithMaxEntries(cfg.History.MaxEntries), nil
}

// recordHistory stores a query/response pair, logging rather than failing
// on error. Answering the user outranks bookkeeping.
func recordHistory(store *history.Store, query string, resp *response.Structured) {
	if store == nil {
		return
	}
	if _, err := store.Add(query, resp); err != nil {
		log.Printf("cli: history record failed: %v", err)
	}
}

// ============================================================================
// ASK COMMAND
// ============================================================================

// HandleAskCommand answers a single query and exits. The query comes from
// the command line, or from piped stdin when no argument was given.
func HandleAskCommand(args *Args) error {
	query := args.Query
	if query == "" {
		piped, err := readPipedQuery()
		if err != nil {
			return NewCommandError("ask", err)
		}
		query = piped
	}
	if strings.TrimSpace(query) == "" {
		return NewValidationError("query", "no query given (pass one as an argument or pipe it on stdin)")
	}

	cfg := config.Global()
	a := NewAgentFromConfig(cfg)

	store, err := OpenHistory(cfg)
	if err != nil {
		log.Printf("cli: history unavailable: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	outcome, err := a.HandleDetailed(context.Background(), query)
	if err != nil {
		return NewCommandError("ask", err)
	}

	recordHistory(store, query, outcome.Response)

	if args.JSON {
		printOutcomeJSON("ask", query, outcome)
		return nil
	}

	displayOutcome(outcome, cfg, args)
	return nil
}

// readPipedQuery reads a query from stdin when input is piped in.
func readPipedQuery() (string, error) {
	if IsTTY() {
		return "", nil
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, agent.MaxQueryLength+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > agent.MaxQueryLength {
		return "", agent.ErrQueryTooLong
	}
	return strings.TrimSpace(string(data)), nil
}

// ============================================================================
// OUTCOME DISPLAY
// ============================================================================

// displayOutcome prints a routing line, the answer, and any sources.
func displayOutcome(outcome *agent.Outcome, cfg *config.Config, args *Args) {
	resp := outcome.Response

	if cfg.UI.ShowRouting && !args.Quiet {
		fmt.Println(RenderRoute(outcome.Decision.Route.String(), outcome.Decision.Reason))
		fmt.Println()
	}

	switch resp.Mode {
	case response.ModeError:
		fmt.Println(ErrorStyle.Render(resp.Answer))
	case response.ModeMath:
		fmt.Println(AnswerStyle.Render(resp.Answer))
	default:
		printSearchAnswer(resp, args)
	}

	if !args.Quiet {
		fmt.Println()
		fmt.Println(DimStyle.Render(fmt.Sprintf("(%s, %dms)", resp.Mode, outcome.Elapsed.Milliseconds())))
	}
}

// printSearchAnswer renders a search answer (markdown on a TTY unless
// --raw) followed by its source list.
func printSearchAnswer(resp *response.Structured, args *Args) {
	if !args.Raw && IsStdoutTTY() {
		fmt.Print(renderMarkdown(resp.Answer))
	} else {
		fmt.Println(resp.Answer)
	}

	if len(resp.Sources) > 0 {
		fmt.Println()
		fmt.Println(LabelStyle.Render("Sources:"))
		for i, src := range resp.Sources {
			title := src.Title
			if title == "" {
				title = src.URL
			}
			fmt.Printf("  %d. %s\n     %s\n", i+1, ValueStyle.Render(title), SourceStyle.Render(src.URL))
		}
	}
}

// printOutcomeJSON emits the ask payload inside the JSON envelope.
func printOutcomeJSON(command, query string, outcome *agent.Outcome) {
	resp := outcome.Response
	sources := resp.Sources
	if sources == nil {
		sources = []response.Source{}
	}
	NewJSONResponse(command, AskData{
		Query:      query,
		Route:      outcome.Decision.Route.String(),
		Reason:     outcome.Decision.Reason,
		Mode:       resp.Mode.String(),
		Answer:     resp.Answer,
		Sources:    sources,
		DurationMs: outcome.Elapsed.Milliseconds(),
	}).Print()
}
