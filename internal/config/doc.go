// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for askrun.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - SearchConfig: Search provider (Tavily) configuration
//   - CloudConfig: Summarizer provider (OpenRouter) configuration
//   - LimitsConfig: Request timeout and query size limits
//   - HistoryConfig: Local history store configuration
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ASKRUN_*, plus TAVILY_API_KEY and OPENROUTER_API_KEY)
//   - ~/.askrun/config.toml
//   - ~/.askrun/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	key := cfg.Search.TavilyKey
//	timeout := cfg.Limits.RequestTimeout()
package config
