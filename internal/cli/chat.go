// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/jeranaias/askrun/internal/agent"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/response"
)

// ============================================================================
// LINE EDITOR
// ============================================================================

// chatHistoryFile is the liner input history, kept separate from the
// query/response store.
const chatHistoryFile = "chat_history"

// ChatCLI wraps liner with input-history persistence in the config dir.
type ChatCLI struct {
	line        *liner.State
	historyPath string
}

// NewChatCLI creates a line editor with Ctrl-C aborting the current line.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	var historyPath string
	if dir, err := config.ConfigDir(); err == nil {
		historyPath = filepath.Join(dir, chatHistoryFile)
	}

	c := &ChatCLI{line: line, historyPath: historyPath}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if c.historyPath == "" {
		return
	}
	f, err := os.Open(c.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.ReadHistory(f)
}

func (c *ChatCLI) saveHistory() {
	if c.historyPath == "" {
		return
	}
	f, err := os.OpenFile(c.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("cli: chat history save failed: %v", err)
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// ReadInput reads one line with editing and history recall.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves input history and restores the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// ============================================================================
// CHAT SESSION
// ============================================================================

// chatSession tracks per-session state for the REPL.
type chatSession struct {
	agent       *agent.Agent
	store       *history.Store
	cfg         *config.Config
	args        *Args
	mathCount   int
	searchCount int
	errorCount  int
}

// HandleChatCommand runs the line-based REPL. Each line is a query;
// lines starting with / are session commands.
func HandleChatCommand(args *Args) error {
	if !IsTTY() {
		return NewValidationError("chat", "chat requires an interactive terminal (use ask for piped input)")
	}

	cfg := config.Global()
	session := &chatSession{
		agent: NewAgentFromConfig(cfg),
		cfg:   cfg,
		args:  args,
	}

	store, err := OpenHistory(cfg)
	if err != nil {
		log.Printf("cli: history unavailable: %v", err)
	}
	session.store = store
	if store != nil {
		defer store.Close()
	}

	cli := NewChatCLI()
	defer cli.Close()

	// SIGTERM restores the terminal before exit; Ctrl-C is handled by
	// liner as a line abort.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		<-sigCh
		cli.Close()
		os.Exit(ExitSuccess)
	}()
	defer signal.Stop(sigCh)

	session.printWelcome()

	for {
		input, err := cli.ReadInput("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(DimStyle.Render("(Ctrl-C again or /quit to exit)"))
				continue
			}
			// io.EOF from Ctrl-D ends the session cleanly.
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := session.handleSlashCommand(input); quit {
				break
			}
			continue
		}

		session.runQuery(input)
	}

	session.printExitSummary()
	return nil
}

// runQuery answers one query and updates session counters.
func (s *chatSession) runQuery(query string) {
	outcome, err := s.agent.HandleDetailed(context.Background(), query)
	if err != nil {
		fmt.Println(ErrorStyle.Render("Error: " + err.Error()))
		return
	}

	recordHistory(s.store, query, outcome.Response)

	switch outcome.Response.Mode {
	case response.ModeMath:
		s.mathCount++
	case response.ModeSearch:
		s.searchCount++
	default:
		s.errorCount++
	}

	displayOutcome(outcome, s.cfg, s.args)
}

// ============================================================================
// SLASH COMMANDS
// ============================================================================

// handleSlashCommand processes a /command line. Returns true to quit.
func (s *chatSession) handleSlashCommand(input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/?":
		s.printHelp()
	case "/history":
		s.printHistory()
	case "/clear":
		s.clearHistory()
	case "/status":
		s.printStatus()
	case "/routing":
		s.cfg.UI.ShowRouting = !s.cfg.UI.ShowRouting
		fmt.Printf("Routing line: %v\n", s.cfg.UI.ShowRouting)
	default:
		fmt.Println(WarningStyle.Render(fmt.Sprintf("Unknown command %s (try /help)", parts[0])))
	}
	return false
}

func (s *chatSession) printWelcome() {
	fmt.Println(TitleStyle.Render(fmt.Sprintf("askrun chat %s", Version)))
	fmt.Println(DimStyle.Render("Type a question or an expression. /help for commands, /quit to exit."))
	fmt.Println()
}

func (s *chatSession) printHelp() {
	fmt.Println(TitleStyle.Render("Session commands"))
	fmt.Println("  /help      Show this help")
	fmt.Println("  /history   Show recent queries")
	fmt.Println("  /clear     Delete stored history")
	fmt.Println("  /status    Show configuration status")
	fmt.Println("  /routing   Toggle the routing line")
	fmt.Println("  /quit      Exit")
	fmt.Println()
}

func (s *chatSession) printHistory() {
	if s.store == nil {
		fmt.Println(DimStyle.Render("History is disabled."))
		return
	}
	entries, err := s.store.List()
	if err != nil {
		fmt.Println(ErrorStyle.Render("Error: " + err.Error()))
		return
	}
	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("No history yet."))
		return
	}
	for _, e := range entries {
		printHistoryEntry(e, false)
	}
}

func (s *chatSession) clearHistory() {
	if s.store == nil {
		fmt.Println(DimStyle.Render("History is disabled."))
		return
	}
	if err := s.store.Clear(); err != nil {
		fmt.Println(ErrorStyle.Render("Error: " + err.Error()))
		return
	}
	fmt.Println(SuccessStyle.Render("History cleared."))
}

func (s *chatSession) printStatus() {
	fmt.Println(TitleStyle.Render("Status"))
	fmt.Printf("  %s%s\n", RenderLabel("Model:", 16), s.cfg.Cloud.Model)
	fmt.Printf("  %s%s\n", RenderLabel("Search depth:", 16), s.cfg.Search.Depth)
	fmt.Printf("  %s%d\n", RenderLabel("Max results:", 16), s.cfg.Search.MaxResults)
	fmt.Printf("  %s%s\n", RenderLabel("Timeout:", 16), s.cfg.Limits.RequestTimeout())
	fmt.Printf("  %s%s\n", RenderLabel("Tavily key:", 16), maskPresence(s.cfg.Search.TavilyKey))
	fmt.Printf("  %s%s\n", RenderLabel("OpenRouter key:", 16), maskPresence(s.cfg.Cloud.OpenRouterKey))
	fmt.Println()
}

func (s *chatSession) printExitSummary() {
	total := s.mathCount + s.searchCount + s.errorCount
	if total == 0 {
		fmt.Println(DimStyle.Render("Goodbye."))
		return
	}
	fmt.Println()
	fmt.Println(DimStyle.Render(fmt.Sprintf(
		"%d queries this session (%d math, %d search, %d failed). Goodbye.",
		total, s.mathCount, s.searchCount, s.errorCount)))
}

// maskPresence reports whether a secret is set without revealing it.
func maskPresence(key string) string {
	if strings.TrimSpace(key) == "" {
		return ErrorStyle.Render("not set")
	}
	return SuccessStyle.Render("set")
}
