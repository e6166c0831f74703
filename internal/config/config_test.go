// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Search.MaxResults != 5 {
		t.Errorf("Search.MaxResults = %d, want 5", cfg.Search.MaxResults)
	}
	if cfg.Search.Depth != "basic" {
		t.Errorf("Search.Depth = %q, want basic", cfg.Search.Depth)
	}
	if cfg.Cloud.Model != "openrouter/auto" {
		t.Errorf("Cloud.Model = %q, want openrouter/auto", cfg.Cloud.Model)
	}
	if cfg.Limits.RequestTimeoutSecs != 15 {
		t.Errorf("Limits.RequestTimeoutSecs = %d, want 15", cfg.Limits.RequestTimeoutSecs)
	}
	if cfg.History.MaxEntries != 10 {
		t.Errorf("History.MaxEntries = %d, want 10", cfg.History.MaxEntries)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "max results too high",
			mutate:  func(c *Config) { c.Search.MaxResults = 50 },
			wantErr: "search.max_results",
		},
		{
			name:    "max results zero",
			mutate:  func(c *Config) { c.Search.MaxResults = 0 },
			wantErr: "search.max_results",
		},
		{
			name:    "bad depth",
			mutate:  func(c *Config) { c.Search.Depth = "deep" },
			wantErr: "search.depth",
		},
		{
			name:    "timeout below window",
			mutate:  func(c *Config) { c.Limits.RequestTimeoutSecs = 5 },
			wantErr: "limits.request_timeout_secs",
		},
		{
			name:    "timeout above window",
			mutate:  func(c *Config) { c.Limits.RequestTimeoutSecs = 60 },
			wantErr: "limits.request_timeout_secs",
		},
		{
			name:    "history bound zero",
			mutate:  func(c *Config) { c.History.MaxEntries = 0 },
			wantErr: "history.max_entries",
		},
		{
			name:    "bad theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Search.TavilyKey = "tvly-test-key"
	cfg.Search.MaxResults = 3
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	// Config files hold API keys and must not be group/world readable
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML() error: %v", err)
	}
	if loaded.Search.TavilyKey != "tvly-test-key" {
		t.Errorf("TavilyKey = %q, want tvly-test-key", loaded.Search.TavilyKey)
	}
	if loaded.Search.MaxResults != 3 {
		t.Errorf("MaxResults = %d, want 3", loaded.Search.MaxResults)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", loaded.UI.Theme)
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Cloud.OpenRouterKey = "sk-or-test"
	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	loaded := Default()
	if err := LoadJSON(loaded, path); err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if loaded.Cloud.OpenRouterKey != "sk-or-test" {
		t.Errorf("OpenRouterKey = %q, want sk-or-test", loaded.Cloud.OpenRouterKey)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// Partial config: only the key is set, everything else should default
	content := "[search]\ntavily_key = \"tvly-partial\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML() error: %v", err)
	}

	if cfg.Search.TavilyKey != "tvly-partial" {
		t.Errorf("TavilyKey = %q, want tvly-partial", cfg.Search.TavilyKey)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want default 5", cfg.Search.MaxResults)
	}
	if cfg.Limits.RequestTimeoutSecs != 15 {
		t.Errorf("RequestTimeoutSecs = %d, want default 15", cfg.Limits.RequestTimeoutSecs)
	}
}

func TestEnsureSecurePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if err := ensureSecurePermissions(path); err != nil {
		t.Fatalf("ensureSecurePermissions() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ASKRUN_TAVILY_KEY", "tvly-env")
	t.Setenv("ASKRUN_OPENROUTER_KEY", "sk-or-env")
	t.Setenv("ASKRUN_MODEL", "anthropic/claude-3.5-haiku")
	t.Setenv("ASKRUN_MAX_RESULTS", "7")
	t.Setenv("ASKRUN_TIMEOUT_SECS", "20")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Search.TavilyKey != "tvly-env" {
		t.Errorf("TavilyKey = %q, want tvly-env", cfg.Search.TavilyKey)
	}
	if cfg.Cloud.OpenRouterKey != "sk-or-env" {
		t.Errorf("OpenRouterKey = %q, want sk-or-env", cfg.Cloud.OpenRouterKey)
	}
	if cfg.Cloud.Model != "anthropic/claude-3.5-haiku" {
		t.Errorf("Model = %q", cfg.Cloud.Model)
	}
	if cfg.Search.MaxResults != 7 {
		t.Errorf("MaxResults = %d, want 7", cfg.Search.MaxResults)
	}
	if cfg.Limits.RequestTimeoutSecs != 20 {
		t.Errorf("RequestTimeoutSecs = %d, want 20", cfg.Limits.RequestTimeoutSecs)
	}
}

func TestApplyEnvOverrides_ProviderNames(t *testing.T) {
	t.Setenv("ASKRUN_TAVILY_KEY", "")
	t.Setenv("ASKRUN_OPENROUTER_KEY", "")
	t.Setenv("TAVILY_API_KEY", "tvly-fallback")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-fallback")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Search.TavilyKey != "tvly-fallback" {
		t.Errorf("TavilyKey = %q, want tvly-fallback", cfg.Search.TavilyKey)
	}
	if cfg.Cloud.OpenRouterKey != "sk-or-fallback" {
		t.Errorf("OpenRouterKey = %q, want sk-or-fallback", cfg.Cloud.OpenRouterKey)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("search.max_results", "4"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if cfg.Search.MaxResults != 4 {
		t.Errorf("MaxResults = %d, want 4", cfg.Search.MaxResults)
	}

	if err := cfg.Set("ui.show_routing", "false"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if cfg.UI.ShowRouting {
		t.Error("ShowRouting = true, want false")
	}

	got, err := cfg.Get("search.max_results")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != 4 {
		t.Errorf("Get() = %v, want 4", got)
	}

	if _, err := cfg.Get("search.nonexistent"); err == nil {
		t.Error("Get() on unknown field should fail")
	}
	if err := cfg.Set("nonexistent.field", "x"); err == nil {
		t.Error("Set() on unknown field should fail")
	}
}

func TestString_RedactsKeys(t *testing.T) {
	cfg := Default()
	cfg.Search.TavilyKey = "tvly-secret-value"
	cfg.Cloud.OpenRouterKey = "sk-or-secret-value"

	s := cfg.String()
	if strings.Contains(s, "tvly-secret-value") {
		t.Error("String() leaked Tavily key")
	}
	if strings.Contains(s, "sk-or-secret-value") {
		t.Error("String() leaked OpenRouter key")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark redacted fields")
	}

	// Original must be untouched
	if cfg.Search.TavilyKey != "tvly-secret-value" {
		t.Error("String() mutated the original config")
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()

	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".askrun", "history.db")) {
		t.Errorf("HistoryPath() = %q, want ~/.askrun/history.db", path)
	}

	cfg.History.Path = "/tmp/custom.db"
	path, err = cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error: %v", err)
	}
	if path != "/tmp/custom.db" {
		t.Errorf("HistoryPath() = %q, want override", path)
	}
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if cfg := Global(); cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	ResetGlobalForTesting()

	_ = Global()

	custom := Default()
	custom.Version = "custom-version"
	SetGlobal(custom)

	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
}
