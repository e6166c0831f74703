// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package response

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// MODE TYPE
// ============================================================================

// Mode identifies which handler produced a response.
type Mode int

const (
	// ModeError marks a response describing a failure. It is the zero value
	// so that an unset or unrecognized mode never masquerades as a result.
	ModeError Mode = iota
	// ModeMath marks a response produced by the expression evaluator.
	ModeMath
	// ModeSearch marks a response produced by the search/summarize pipeline.
	ModeSearch
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMath:
		return "math"
	case ModeSearch:
		return "search"
	case ModeError:
		return "error"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode maps a wire name back to a Mode. Anything unrecognized
// resolves to ModeError, mirroring the validation rule for Structured.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "math":
		return ModeMath
	case "search":
		return ModeSearch
	default:
		return ModeError
	}
}

// MarshalJSON encodes the mode as its wire name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a wire name, coercing unknown values to ModeError.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = ParseMode(s)
	return nil
}

// ============================================================================
// STRUCTURED RESPONSE
// ============================================================================

// Source attributes part of a search-derived answer to a retrieved document.
type Source struct {
	// Title is the document title as reported by the search provider.
	Title string `json:"title"`
	// URL locates the document.
	URL string `json:"url"`
}

// Structured is the validated record returned for every query.
type Structured struct {
	// Mode identifies the handler that produced the answer.
	Mode Mode `json:"mode"`
	// Answer is the user-facing text: a formatted number, a bullet summary,
	// or a short failure description. Never empty after Sanitize.
	Answer string `json:"answer"`
	// Sources lists the references the answer drew from, deduplicated by
	// URL with original order preserved. Always empty for math and error
	// responses.
	Sources []Source `json:"sources"`
}

// String returns a compact one-line summary for logging.
func (s *Structured) String() string {
	return fmt.Sprintf("%s (%d sources): %s", s.Mode, len(s.Sources), s.Answer)
}

// JSON renders the response as indented JSON, the form used by exports and
// the --json CLI flag.
func (s *Structured) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// Fallback texts used when a handler produced an empty answer. Kept as
// constants so tests and callers can match on them.
const (
	// NoResultsAnswer is returned when the search provider found nothing.
	NoResultsAnswer = "No information found for this query."
	// emptyAnswer repairs a success response whose answer came back blank.
	emptyAnswer = "(no answer produced)"
)

// Math builds a math-mode response. Sources are always empty.
func Math(answer string) *Structured {
	return Sanitize(&Structured{Mode: ModeMath, Answer: answer})
}

// Search builds a search-mode response from a summary and its sources.
// An empty source list forces the no-results answer per the shape invariant.
func Search(answer string, sources []Source) *Structured {
	return Sanitize(&Structured{Mode: ModeSearch, Answer: answer, Sources: sources})
}

// Error builds an error-mode response carrying a short human-readable
// message. Never pass raw provider error text to end users; callers are
// expected to phrase the message themselves.
func Error(message string) *Structured {
	return Sanitize(&Structured{Mode: ModeError, Answer: message})
}

// ============================================================================
// VALIDATION
// ============================================================================

// Sanitize enforces the Structured shape invariants, repairing violations
// in place and returning the same pointer. It is idempotent.
//
// Repairs applied:
//   - unknown mode -> ModeError
//   - math or error mode with sources -> sources dropped
//   - sources deduplicated by URL, original order preserved; entries with
//     an empty URL dropped
//   - search mode with no sources and an empty answer -> NoResultsAnswer
//   - any other empty answer -> placeholder text
func Sanitize(s *Structured) *Structured {
	if s == nil {
		return &Structured{Mode: ModeError, Answer: emptyAnswer, Sources: []Source{}}
	}

	switch s.Mode {
	case ModeMath, ModeSearch, ModeError:
	default:
		s.Mode = ModeError
	}

	if s.Mode != ModeSearch {
		s.Sources = []Source{}
	} else {
		s.Sources = DedupeSources(s.Sources)
	}

	s.Answer = strings.TrimSpace(s.Answer)
	if s.Answer == "" {
		if s.Mode == ModeSearch && len(s.Sources) == 0 {
			s.Answer = NoResultsAnswer
		} else {
			s.Answer = emptyAnswer
		}
	}
	return s
}

// DedupeSources removes duplicate URLs while preserving first-seen order.
// Entries with an empty URL are dropped. The input slice is not modified.
func DedupeSources(in []Source) []Source {
	out := make([]Source, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, src := range in {
		url := strings.TrimSpace(src.URL)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, Source{Title: strings.TrimSpace(src.Title), URL: url})
	}
	return out
}
