// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeranaias/askrun/internal/util"
)

// ============================================================================
// EXPORT
// ============================================================================

// ExportJSON renders a single entry as indented JSON, the payload behind
// the download action in the TUI and `history export --json`.
func ExportJSON(entry *Entry) ([]byte, error) {
	if entry == nil {
		return nil, fmt.Errorf("cannot export nil entry")
	}
	return json.MarshalIndent(entry, "", "  ")
}

// ExportMarkdown renders entries as a Markdown document, most recent
// first, matching the order List returns.
func ExportMarkdown(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# askrun history\n\n")

	if len(entries) == 0 {
		b.WriteString("_No entries._\n")
		return b.String()
	}

	for _, e := range entries {
		fmt.Fprintf(&b, "## %s\n\n", e.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&b, "**Query:** %s\n\n", e.Query)
		fmt.Fprintf(&b, "**Mode:** %s\n\n", e.Response.Mode)
		fmt.Fprintf(&b, "%s\n", e.Response.Answer)
		if len(e.Response.Sources) > 0 {
			b.WriteString("\n**Sources:**\n")
			for _, src := range e.Response.Sources {
				if src.Title != "" {
					fmt.Fprintf(&b, "- [%s](%s)\n", src.Title, src.URL)
				} else {
					fmt.Fprintf(&b, "- %s\n", src.URL)
				}
			}
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// WriteExportFile writes export data to path atomically, so a crash never
// leaves a half-written export behind.
func WriteExportFile(path string, data []byte) error {
	return util.AtomicWriteFile(path, data, 0644)
}
