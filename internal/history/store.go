// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/askrun/internal/response"
)

// DefaultMaxEntries is the bounded history size: the most recent entries
// are kept, oldest evicted first.
const DefaultMaxEntries = 10

// ErrNotFound is returned when an entry ID does not exist.
var ErrNotFound = errors.New("history entry not found")

// Entry pairs a query with its response and a timestamp.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`
	// Timestamp is when the query was answered.
	Timestamp time.Time `json:"timestamp"`
	// Query is the raw query text.
	Query string `json:"query"`
	// Response is the structured response returned for the query.
	Response *response.Structured `json:"response"`
}

// ============================================================================
// STORE
// ============================================================================

// Store is a bounded, SQLite-backed history. Safe for concurrent use.
type Store struct {
	db         *sql.DB
	maxEntries int
	mu         sync.Mutex
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, maxEntries: DefaultMaxEntries}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id         TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		query      TEXT NOT NULL,
		mode       TEXT NOT NULL,
		answer     TEXT NOT NULL,
		sources    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// WithMaxEntries overrides the history bound. Values below one are ignored.
func (s *Store) WithMaxEntries(n int) *Store {
	if n > 0 {
		s.maxEntries = n
	}
	return s
}

// MaxEntries returns the configured history bound.
func (s *Store) MaxEntries() int {
	return s.maxEntries
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ============================================================================
// WRITES
// ============================================================================

// Add inserts a new entry and evicts the oldest entries beyond the bound,
// in one transaction. Returns the stored entry with its generated ID.
func (s *Store) Add(query string, resp *response.Structured) (*Entry, error) {
	if resp == nil {
		return nil, errors.New("response cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Query:     query,
		Response:  resp,
	}

	sourcesJSON, err := json.Marshal(resp.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO entries (id, created_at, query, mode, answer, sources) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UnixNano(), entry.Query,
		resp.Mode.String(), resp.Answer, string(sourcesJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	// Evict the oldest entries beyond the bound.
	_, err = tx.Exec(
		`DELETE FROM entries WHERE id NOT IN (
			SELECT id FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, s.maxEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to evict old entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return entry, nil
}

// Delete removes an entry by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// ============================================================================
// READS
// ============================================================================

// List returns all entries, most recent first.
func (s *Store) List() ([]Entry, error) {
	return s.query(`SELECT id, created_at, query, mode, answer, sources
		FROM entries ORDER BY created_at DESC, rowid DESC`)
}

// Get returns a single entry by ID.
func (s *Store) Get(id string) (*Entry, error) {
	entries, err := s.query(`SELECT id, created_at, query, mode, answer, sources
		FROM entries WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &entries[0], nil
}

// Latest returns the most recent entry, or ErrNotFound on an empty store.
func (s *Store) Latest() (*Entry, error) {
	entries, err := s.query(`SELECT id, created_at, query, mode, answer, sources
		FROM entries ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// Search returns entries whose query or answer contains the term,
// case-insensitive, most recent first.
func (s *Store) Search(term string) ([]Entry, error) {
	pattern := "%" + term + "%"
	return s.query(`SELECT id, created_at, query, mode, answer, sources
		FROM entries
		WHERE query LIKE ? COLLATE NOCASE OR answer LIKE ? COLLATE NOCASE
		ORDER BY created_at DESC, rowid DESC`, pattern, pattern)
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func (s *Store) query(q string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			createdAt   int64
			mode        string
			answer      string
			sourcesJSON string
		)
		if err := rows.Scan(&entry.ID, &createdAt, &entry.Query, &mode, &answer, &sourcesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		resp := &response.Structured{
			Mode:   response.ParseMode(mode),
			Answer: answer,
		}
		if err := json.Unmarshal([]byte(sourcesJSON), &resp.Sources); err != nil {
			return nil, fmt.Errorf("failed to decode sources: %w", err)
		}
		entry.Timestamp = time.Unix(0, createdAt).UTC()
		entry.Response = response.Sanitize(resp)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
