// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/askrun/internal/config"
	"github.com/jeranaias/askrun/internal/history"
	"github.com/jeranaias/askrun/internal/util"
)

// ============================================================================
// HISTORY COMMAND
// ============================================================================

// HandleHistoryCommand dispatches the history subcommands.
func HandleHistoryCommand(args *Args) error {
	cfg := config.Global()
	if !cfg.History.Enabled {
		if args.JSON {
			return NewCommandError("history", fmt.Errorf("history is disabled in configuration"))
		}
		fmt.Println(DimStyle.Render("History is disabled (set history.enabled = true)."))
		return nil
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return NewCommandError("history", err)
	}
	store, err := history.Open(path)
	if err != nil {
		return NewCommandError("history", err)
	}
	defer store.Close()
	store.WithMaxEntries(cfg.History.MaxEntries)

	switch args.Subcommand {
	case "show":
		return historyShow(store, args)
	case "search":
		return historySearch(store, args)
	case "clear":
		return historyClear(store, args)
	case "export":
		return historyExport(store, args)
	default:
		return NewValidationError("history", fmt.Sprintf("unknown subcommand %q", args.Subcommand))
	}
}

// historyShow lists recent entries, newest first.
func historyShow(store *history.Store, args *Args) error {
	entries, err := store.List()
	if err != nil {
		return NewCommandError("history", err)
	}
	if args.Limit > 0 && len(entries) > args.Limit {
		entries = entries[:args.Limit]
	}

	if args.JSON {
		printHistoryJSON("history", entries)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("No history yet."))
		return nil
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("History (%d entries)", len(entries))))
	fmt.Println(RenderSeparator(60))
	for _, e := range entries {
		printHistoryEntry(e, true)
	}
	return nil
}

// historySearch lists entries whose query or answer match a term.
func historySearch(store *history.Store, args *Args) error {
	entries, err := store.Search(args.SearchTerm)
	if err != nil {
		return NewCommandError("history", err)
	}

	if args.JSON {
		printHistoryJSON("history search", entries)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render(fmt.Sprintf("No entries match %q.", args.SearchTerm)))
		return nil
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("%d entries match %q", len(entries), args.SearchTerm)))
	fmt.Println(RenderSeparator(60))
	for _, e := range entries {
		printHistoryEntry(e, true)
	}
	return nil
}

// historyClear deletes all entries after confirmation.
func historyClear(store *history.Store, args *Args) error {
	count, err := store.Count()
	if err != nil {
		return NewCommandError("history", err)
	}
	if count == 0 {
		if args.JSON {
			NewJSONResponse("history clear", map[string]int{"deleted": 0}).Print()
			return nil
		}
		fmt.Println(DimStyle.Render("History is already empty."))
		return nil
	}

	confirmed, err := RequireConfirmation(args.Confirm,
		fmt.Sprintf("delete all %d history entries", count), args.JSON)
	if err != nil {
		return NewCommandError("history clear", err)
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}

	if err := store.Clear(); err != nil {
		return NewCommandError("history clear", err)
	}

	if args.JSON {
		NewJSONResponse("history clear", map[string]int{"deleted": count}).Print()
		return nil
	}
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted %d entries.", count)))
	return nil
}

// historyExport writes all entries to a file or stdout. Format defaults
// to markdown; --format json exports each entry as a JSON array.
func historyExport(store *history.Store, args *Args) error {
	entries, err := store.List()
	if err != nil {
		return NewCommandError("history export", err)
	}

	format := args.Format
	if format == "" {
		format = "markdown"
	}

	var data []byte
	switch format {
	case "markdown", "md":
		data = []byte(history.ExportMarkdown(entries))
	case "json":
		data, err = exportEntriesJSON(entries)
		if err != nil {
			return NewCommandError("history export", err)
		}
	default:
		return NewValidationError("--format", fmt.Sprintf("unknown format %q (json or markdown)", format))
	}

	if args.Output == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := history.WriteExportFile(args.Output, data); err != nil {
		return NewCommandError("history export", err)
	}
	if args.JSON {
		NewJSONResponse("history export", map[string]any{
			"path":    args.Output,
			"entries": len(entries),
			"format":  format,
		}).Print()
		return nil
	}
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Exported %d entries to %s", len(entries), args.Output)))
	return nil
}

// exportEntriesJSON renders a JSON array of individually exported entries.
func exportEntriesJSON(entries []history.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString("[\n")
	for i := range entries {
		doc, err := history.ExportJSON(&entries[i])
		if err != nil {
			return nil, err
		}
		b.Write(doc)
		if i < len(entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return []byte(b.String()), nil
}

// ============================================================================
// ENTRY DISPLAY
// ============================================================================

// printHistoryEntry renders one entry. Verbose mode includes the entry ID
// and source count.
func printHistoryEntry(e history.Entry, verbose bool) {
	ts := e.Timestamp.Local().Format(time.DateTime)
	mode := "?"
	answer := ""
	if e.Response != nil {
		mode = e.Response.Mode.String()
		answer = util.TruncateWidth(util.Flatten(e.Response.Answer), 100)
	}

	fmt.Printf("%s %s %s\n", DimStyle.Render(ts), RouteStyle.Render(fmt.Sprintf("%-6s", mode)),
		ValueStyle.Render(util.TruncateWidth(util.Flatten(e.Query), 60)))
	fmt.Printf("   %s\n", AnswerStyle.Render(answer))
	if verbose {
		extra := "id " + e.ID
		if e.Response != nil && len(e.Response.Sources) > 0 {
			extra += fmt.Sprintf(", %d sources", len(e.Response.Sources))
		}
		fmt.Printf("   %s\n", DimStyle.Render(extra))
	}
}

// printHistoryJSON emits entries inside the JSON envelope.
func printHistoryJSON(command string, entries []history.Entry) {
	out := make([]HistoryEntryData, 0, len(entries))
	for _, e := range entries {
		d := HistoryEntryData{
			ID:        e.ID,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			Query:     e.Query,
		}
		if e.Response != nil {
			d.Mode = e.Response.Mode.String()
			d.Answer = e.Response.Answer
			d.Sources = e.Response.Sources
		}
		out = append(out, d)
	}
	NewJSONResponse(command, HistoryData{Entries: out, Count: len(out)}).Print()
}
