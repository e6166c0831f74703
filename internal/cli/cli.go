// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// ============================================================================
// VERSION INFORMATION
// ============================================================================

// Version information, overridden at build time via -ldflags.
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ============================================================================
// COMMAND TYPES
// ============================================================================

// Command identifies which subcommand was requested.
type Command int

const (
	// CmdTUI launches the interactive terminal UI (the default).
	CmdTUI Command = iota
	// CmdAsk answers a single query and exits.
	CmdAsk
	// CmdChat starts the line-based REPL.
	CmdChat
	// CmdHistory manages stored query history.
	CmdHistory
	// CmdConfig shows or changes configuration.
	CmdConfig
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
	// CmdUnknown is returned for unrecognized commands.
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds the parsed command line.
type Args struct {
	// Command is the requested subcommand.
	Command Command

	// Query is the query text for ask (joined from remaining args).
	Query string

	// Subcommand is the history/config subcommand (show, search, clear,
	// export, set, get, path).
	Subcommand string

	// ConfigKey and ConfigVal are the key/value for config get/set.
	ConfigKey string
	ConfigVal string

	// SearchTerm is the term for history search.
	SearchTerm string

	// Format is the export format for history export (json or markdown).
	Format string

	// Output is the output path for history export.
	Output string

	// JSON enables machine-readable output.
	JSON bool

	// Raw disables markdown rendering of answers.
	Raw bool

	// Quiet suppresses the routing line and decorations.
	Quiet bool

	// Confirm skips interactive confirmation for destructive actions.
	Confirm bool

	// Limit bounds how many history entries to show (0 means all).
	Limit int
}

// ============================================================================
// USAGE TEXT
// ============================================================================

const usageText = `askrun %s - query assistant with math evaluation and web search

USAGE:
    askrun [command] [options]

Running askrun with no command opens the interactive TUI.

COMMANDS:
    ask <query>          Answer a single query and exit
    chat                 Line-based REPL (no TUI)
    history [show]       Show recent queries
    history search <t>   Search history for a term
    history clear        Delete all history entries
    history export       Export history (--format json|markdown)
    config show          Show configuration (keys masked)
    config get <key>     Print one configuration value
    config set <k> <v>   Change a configuration value
    config path          Print the configuration file path
    version              Print version information
    help                 Show this help

OPTIONS:
    --json               Machine-readable JSON output
    --raw                Plain text answers (no markdown rendering)
    --quiet, -q          Suppress the routing line and decorations
    --confirm            Skip confirmation for destructive actions
    --format <f>         Export format: json or markdown
    --output <path>      Export destination file
    --limit <n>          Limit history entries shown

EXAMPLES:
    askrun ask "2 + 2 * 10"
    askrun ask "capital of France"
    askrun ask --json "Compute 19^3 + 47"
    echo "sqrt is not supported" | askrun ask
    askrun history search capital
    askrun config set search.max_results 3

Queries that look like arithmetic are evaluated locally; everything else
is searched on the web and summarized. Set TAVILY_API_KEY and
OPENROUTER_API_KEY (or use config set) to enable search.
`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// ============================================================================
// ARGUMENT PARSING
// ============================================================================

// Parse parses the command line (excluding the program name).
func Parse(argv []string) (*Args, error) {
	args := &Args{Command: CmdTUI}

	rest, err := parseGlobalFlags(argv, args)
	if err != nil {
		return nil, err
	}

	if len(rest) == 0 {
		return args, nil
	}

	switch rest[0] {
	case "ask":
		args.Command = CmdAsk
		// Everything after the command is the query. A missing query is
		// allowed here: the handler falls back to piped stdin.
		args.Query = strings.TrimSpace(strings.Join(rest[1:], " "))
	case "chat":
		args.Command = CmdChat
	case "tui":
		args.Command = CmdTUI
	case "history":
		args.Command = CmdHistory
		if err := parseHistoryArgs(rest[1:], args); err != nil {
			return nil, err
		}
	case "config":
		args.Command = CmdConfig
		if err := parseConfigArgs(rest[1:], args); err != nil {
			return nil, err
		}
	case "version", "--version", "-v":
		args.Command = CmdVersion
	case "help", "--help", "-h":
		args.Command = CmdHelp
	default:
		return nil, NewValidationError("command", fmt.Sprintf("unknown command %q (see askrun help)", rest[0]))
	}

	return args, nil
}

// parseGlobalFlags extracts flags valid for every command and returns the
// remaining positional arguments.
func parseGlobalFlags(argv []string, args *Args) ([]string, error) {
	var rest []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "--json":
			args.JSON = true
		case "--raw":
			args.Raw = true
		case "--quiet", "-q":
			args.Quiet = true
		case "--confirm":
			args.Confirm = true
		case "--format":
			val, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			args.Format = val
		case "--output":
			val, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			args.Output = val
		case "--limit":
			val, err := flagValue(argv, &i, arg)
			if err != nil {
				return nil, err
			}
			n, convErr := parsePositiveInt(val)
			if convErr != nil {
				return nil, NewValidationError("--limit", "must be a positive integer")
			}
			args.Limit = n
		default:
			if strings.HasPrefix(arg, "--") && arg != "--version" && arg != "--help" {
				return nil, NewValidationError("flag", fmt.Sprintf("unknown flag %q", arg))
			}
			rest = append(rest, arg)
		}
	}
	return rest, nil
}

// flagValue consumes the value following a flag, advancing the index.
func flagValue(argv []string, i *int, flag string) (string, error) {
	if *i+1 >= len(argv) {
		return "", NewValidationError(flag, "missing value")
	}
	*i++
	return argv[*i], nil
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("not positive")
	}
	return n, nil
}

// parseHistoryArgs parses history subcommands.
func parseHistoryArgs(rest []string, args *Args) error {
	if len(rest) == 0 {
		args.Subcommand = "show"
		return nil
	}

	switch rest[0] {
	case "show", "list":
		args.Subcommand = "show"
	case "search":
		args.Subcommand = "search"
		if len(rest) < 2 {
			return NewValidationError("history search", "missing search term")
		}
		args.SearchTerm = strings.Join(rest[1:], " ")
	case "clear":
		args.Subcommand = "clear"
	case "export":
		args.Subcommand = "export"
	default:
		return NewValidationError("history", fmt.Sprintf("unknown subcommand %q", rest[0]))
	}
	return nil
}

// parseConfigArgs parses config subcommands.
func parseConfigArgs(rest []string, args *Args) error {
	if len(rest) == 0 {
		args.Subcommand = "show"
		return nil
	}

	switch rest[0] {
	case "show":
		args.Subcommand = "show"
	case "get":
		args.Subcommand = "get"
		if len(rest) < 2 {
			return NewValidationError("config get", "missing key")
		}
		args.ConfigKey = rest[1]
	case "set":
		args.Subcommand = "set"
		if len(rest) < 3 {
			return NewValidationError("config set", "usage: config set <key> <value>")
		}
		args.ConfigKey = rest[1]
		args.ConfigVal = strings.Join(rest[2:], " ")
	case "path":
		args.Subcommand = "path"
	default:
		return NewValidationError("config", fmt.Sprintf("unknown subcommand %q", rest[0]))
	}
	return nil
}

// ============================================================================
// SIMPLE COMMAND HANDLERS
// ============================================================================

// HandleVersion prints version information.
func HandleVersion(jsonMode bool) {
	if jsonMode {
		NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
		}).Print()
		return
	}

	fmt.Printf("askrun %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
}

// HandleHelp prints usage.
func HandleHelp() {
	PrintUsage()
}
