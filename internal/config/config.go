// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/askrun/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete askrun configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Search provider (Tavily) configuration
	Search SearchConfig `toml:"search" json:"search"`

	// Cloud summarizer (OpenRouter) configuration
	Cloud CloudConfig `toml:"cloud" json:"cloud"`

	// Request limits
	Limits LimitsConfig `toml:"limits" json:"limits"`

	// History store configuration
	History HistoryConfig `toml:"history" json:"history"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// SearchConfig contains search provider configuration.
type SearchConfig struct {
	// TavilyKey is the Tavily API key
	TavilyKey string `toml:"tavily_key" json:"tavily_key"`
	// MaxResults is the number of results requested per search (1-10)
	MaxResults int `toml:"max_results" json:"max_results"`
	// Depth is the Tavily search depth: "basic" or "advanced"
	Depth string `toml:"depth" json:"depth"`
}

// CloudConfig contains cloud summarizer (OpenRouter) configuration.
type CloudConfig struct {
	// OpenRouterKey is the OpenRouter API key
	OpenRouterKey string `toml:"openrouter_key" json:"openrouter_key"`
	// Model is the model used for summarization
	Model string `toml:"model" json:"model"`
	// MaxTokens caps the completion size (0 = provider default)
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
}

// LimitsConfig contains request limit configuration.
type LimitsConfig struct {
	// RequestTimeoutSecs is the per-call timeout for search and summarization.
	// Valid range is 10-20 seconds; values outside are rejected.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// MaxQueryLength is the maximum accepted query length in bytes
	MaxQueryLength int `toml:"max_query_length" json:"max_query_length"`
}

// RequestTimeout returns the per-call timeout as a time.Duration.
func (l LimitsConfig) RequestTimeout() time.Duration {
	return time.Duration(l.RequestTimeoutSecs) * time.Second
}

// HistoryConfig contains history store configuration.
type HistoryConfig struct {
	// Enabled controls whether queries and responses are recorded
	Enabled bool `toml:"enabled" json:"enabled"`
	// MaxEntries bounds the history store; oldest entries are evicted
	MaxEntries int `toml:"max_entries" json:"max_entries"`
	// Path overrides the history database location (empty = ~/.askrun/history.db)
	Path string `toml:"path" json:"path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowRouting displays the routing decision alongside answers
	ShowRouting bool `toml:"show_routing" json:"show_routing"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Search: SearchConfig{
			TavilyKey:  "",
			MaxResults: 5,
			Depth:      "basic",
		},

		Cloud: CloudConfig{
			OpenRouterKey: "",
			Model:         "openrouter/auto",
			MaxTokens:     512,
		},

		Limits: LimitsConfig{
			RequestTimeoutSecs: 15,
			MaxQueryLength:     100 * 1024,
		},

		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 10,
		},

		UI: UIConfig{
			Theme:       "dark",
			ShowRouting: true,
			CompactMode: false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the askrun configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".askrun"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryPath returns the path to the history database, honoring any
// configured override.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err // File doesn't exist or not accessible
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Apply environment overrides to defaults
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	// General
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Search
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = defaults.Search.MaxResults
	}
	if cfg.Search.Depth == "" {
		cfg.Search.Depth = defaults.Search.Depth
	}

	// Cloud
	if cfg.Cloud.Model == "" {
		cfg.Cloud.Model = defaults.Cloud.Model
	}
	if cfg.Cloud.MaxTokens == 0 {
		cfg.Cloud.MaxTokens = defaults.Cloud.MaxTokens
	}

	// Limits
	if cfg.Limits.RequestTimeoutSecs == 0 {
		cfg.Limits.RequestTimeoutSecs = defaults.Limits.RequestTimeoutSecs
	}
	if cfg.Limits.MaxQueryLength == 0 {
		cfg.Limits.MaxQueryLength = defaults.Limits.MaxQueryLength
	}

	// History
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = defaults.History.MaxEntries
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# askrun configuration file")
	fmt.Fprintln(file, "# Generated by askrun - edit with care")
	fmt.Fprintln(file, "#")
	fmt.Fprintln(file, "# Documentation: https://github.com/jeranaias/askrun")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Search Settings Validation
	// ==========================================================================

	if c.Search.MaxResults < 1 || c.Search.MaxResults > 10 {
		errs = append(errs, ValidationError{
			Field:   "search.max_results",
			Message: fmt.Sprintf("must be 1-10, got %d", c.Search.MaxResults),
		})
	}

	validDepths := map[string]bool{"basic": true, "advanced": true}
	if !validDepths[strings.ToLower(c.Search.Depth)] {
		errs = append(errs, ValidationError{
			Field:   "search.depth",
			Message: fmt.Sprintf("invalid depth '%s', must be one of: basic, advanced", c.Search.Depth),
		})
	}

	// ==========================================================================
	// Cloud Settings Validation
	// ==========================================================================

	if c.Cloud.MaxTokens < 0 || c.Cloud.MaxTokens > 32768 {
		errs = append(errs, ValidationError{
			Field:   "cloud.max_tokens",
			Message: fmt.Sprintf("must be 0-32768, got %d", c.Cloud.MaxTokens),
		})
	}

	// ==========================================================================
	// Limits Validation
	// ==========================================================================

	// External calls must complete within a bounded window so a slow provider
	// cannot hang an interactive session. Valid range: 10-20 seconds.
	if c.Limits.RequestTimeoutSecs < 10 || c.Limits.RequestTimeoutSecs > 20 {
		errs = append(errs, ValidationError{
			Field:   "limits.request_timeout_secs",
			Message: fmt.Sprintf("must be 10-20 seconds, got %d", c.Limits.RequestTimeoutSecs),
		})
	}

	if c.Limits.MaxQueryLength < 1 {
		errs = append(errs, ValidationError{
			Field:   "limits.max_query_length",
			Message: "must be positive",
		})
	}

	// ==========================================================================
	// History Validation
	// ==========================================================================

	if c.History.MaxEntries < 1 || c.History.MaxEntries > 1000 {
		errs = append(errs, ValidationError{
			Field:   "history.max_entries",
			Message: fmt.Sprintf("must be 1-1000, got %d", c.History.MaxEntries),
		})
	}

	// ==========================================================================
	// UI Settings Validation
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ASKRUN_TAVILY_KEY / TAVILY_API_KEY: overrides search.tavily_key
//   - ASKRUN_OPENROUTER_KEY / OPENROUTER_API_KEY: overrides cloud.openrouter_key
//   - ASKRUN_MODEL: overrides cloud.model
//   - ASKRUN_MAX_RESULTS: overrides search.max_results
//   - ASKRUN_TIMEOUT_SECS: overrides limits.request_timeout_secs
//   - ASKRUN_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	// ASKRUN_TAVILY_KEY, with the provider's conventional name as a fallback
	if key := os.Getenv("ASKRUN_TAVILY_KEY"); key != "" {
		c.Search.TavilyKey = key
	} else if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		c.Search.TavilyKey = key
	}

	// ASKRUN_OPENROUTER_KEY, with the provider's conventional name as a fallback
	if key := os.Getenv("ASKRUN_OPENROUTER_KEY"); key != "" {
		c.Cloud.OpenRouterKey = key
	} else if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		c.Cloud.OpenRouterKey = key
	}

	// ASKRUN_MODEL
	if model := os.Getenv("ASKRUN_MODEL"); model != "" {
		c.Cloud.Model = model
	}

	// ASKRUN_MAX_RESULTS
	if raw := os.Getenv("ASKRUN_MAX_RESULTS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Search.MaxResults = n
		}
	}

	// ASKRUN_TIMEOUT_SECS
	if raw := os.Getenv("ASKRUN_TIMEOUT_SECS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Limits.RequestTimeoutSecs = n
		}
	}

	// ASKRUN_THEME
	if theme := os.Getenv("ASKRUN_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "search.max_results").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, return the value
		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "search.max_results").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, set the value
		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// Handle string input with type conversion
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"search.tavily_key",
		"search.max_results",
		"search.depth",
		"cloud.openrouter_key",
		"cloud.model",
		"cloud.max_tokens",
		"limits.request_timeout_secs",
		"limits.max_query_length",
		"history.enabled",
		"history.max_entries",
		"history.path",
		"ui.theme",
		"ui.show_routing",
		"ui.compact_mode",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
// SECURITY: Redacts API keys to prevent accidental exposure in logs or
// debug output.
func (c *Config) String() string {
	safe := c.Clone()

	if safe.Search.TavilyKey != "" {
		safe.Search.TavilyKey = "[REDACTED]"
	}
	if safe.Cloud.OpenRouterKey != "" {
		safe.Cloud.OpenRouterKey = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
