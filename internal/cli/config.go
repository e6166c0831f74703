// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/askrun/internal/config"
)

// ============================================================================
// CONFIG COMMAND
// ============================================================================

// secretKeys are config keys whose values are masked in all output.
var secretKeys = map[string]bool{
	"search.tavily_key":    true,
	"cloud.openrouter_key": true,
}

// HandleConfigCommand dispatches the config subcommands.
func HandleConfigCommand(args *Args) error {
	switch args.Subcommand {
	case "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath(args)
	default:
		return NewValidationError("config", fmt.Sprintf("unknown subcommand %q", args.Subcommand))
	}
}

// configShow prints every key with secrets masked.
func configShow(args *Args) error {
	cfg := config.Global()
	path, _ := config.ConfigPathTOML()

	values := make(map[string]string, len(config.GetAllKeys()))
	for _, key := range config.GetAllKeys() {
		values[key] = displayValue(cfg, key)
	}

	if args.JSON {
		NewJSONResponse("config show", ConfigData{Path: path, Values: values}).Print()
		return nil
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Println(DimStyle.Render(path))
	fmt.Println(RenderSeparator(50))
	for _, key := range config.GetAllKeys() {
		fmt.Printf("  %s%s\n", RenderLabel(key, 28), values[key])
	}
	return nil
}

// configGet prints a single value.
func configGet(args *Args) error {
	cfg := config.Global()
	if _, err := cfg.Get(args.ConfigKey); err != nil {
		return NewNotFoundError("config key", args.ConfigKey)
	}

	value := displayValue(cfg, args.ConfigKey)
	if args.JSON {
		NewJSONResponse("config get", map[string]string{args.ConfigKey: value}).Print()
		return nil
	}
	fmt.Println(value)
	return nil
}

// configSet changes a value, validates the result, and persists it.
func configSet(args *Args) error {
	cfg := config.Global()
	updated := cfg.Clone()

	if err := updated.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewCommandError("config set", err)
	}
	if err := updated.Validate(); err != nil {
		return NewCommandError("config set", err)
	}
	if err := config.Save(updated); err != nil {
		return NewCommandError("config set", err)
	}
	config.SetGlobal(updated)

	if args.JSON {
		NewJSONResponse("config set", map[string]string{
			args.ConfigKey: displayValue(updated, args.ConfigKey),
		}).Print()
		return nil
	}
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Set %s = %s", args.ConfigKey, displayValue(updated, args.ConfigKey))))
	return nil
}

// configPath prints the config file location.
func configPath(args *Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config path", err)
	}
	if args.JSON {
		NewJSONResponse("config path", map[string]string{"path": path}).Print()
		return nil
	}
	fmt.Println(path)
	return nil
}

// displayValue returns a key's value with secrets masked.
func displayValue(cfg *config.Config, key string) string {
	value, err := cfg.Get(key)
	if err != nil {
		return ""
	}
	s := fmt.Sprintf("%v", value)
	if secretKeys[key] {
		if strings.TrimSpace(s) == "" {
			return DimStyle.Render("(not set)")
		}
		return "[REDACTED]"
	}
	return s
}
