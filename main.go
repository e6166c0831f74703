// askrun - query assistant that answers math locally and everything else
// through web search and summarization.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jeranaias/askrun/internal/cli"
	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/ui"
)

// Version information (set at build time via -ldflags).
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package.
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Load a local .env if present; API keys often live there during
	// development. A missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("askrun: .env not loaded: %v", err)
	}

	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(err)
		fmt.Fprintln(os.Stderr, "Run 'askrun help' for usage.")
		os.Exit(cli.GetExitCode(err))
	}

	switch args.Command {
	case cli.CmdAsk:
		if err := cli.HandleAskCommand(args); err != nil {
			os.Exit(cli.HandleError("ask", err, args.JSON))
		}
	case cli.CmdChat:
		if err := cli.HandleChatCommand(args); err != nil {
			os.Exit(cli.HandleError("chat", err, args.JSON))
		}
	case cli.CmdHistory:
		if err := cli.HandleHistoryCommand(args); err != nil {
			os.Exit(cli.HandleError("history", err, args.JSON))
		}
	case cli.CmdConfig:
		if err := cli.HandleConfigCommand(args); err != nil {
			os.Exit(cli.HandleError("config", err, args.JSON))
		}
	case cli.CmdVersion:
		cli.HandleVersion(args.JSON)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI()
	}
}

// runTUI starts the interactive terminal UI.
func runTUI() {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "askrun: the TUI requires a terminal; try 'askrun ask <query>'")
		os.Exit(cli.ExitUsageError)
	}

	cfg := config.Global()

	// Keep the global configuration in sync with on-disk edits while the
	// TUI runs.
	if path, err := config.ConfigPathTOML(); err == nil {
		if watcher, err := config.NewWatcher(path, func(*config.Config) {
			log.Printf("askrun: configuration reloaded")
		}); err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	store, err := cli.OpenHistory(cfg)
	if err != nil {
		log.Printf("askrun: history unavailable: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	if err := ui.Run(cfg, cli.NewAgentFromConfig(cfg), store); err != nil {
		fmt.Fprintf(os.Stderr, "Error running askrun: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
