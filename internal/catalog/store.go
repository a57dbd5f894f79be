// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes Simplenote exports into a local SQLite database.
//
// The catalog is an inspection aid, not part of the conversion path: it
// answers "what tags does this export use", "which notes are untagged",
// and "which note is number 37" before or after a conversion run. Ingesting
// the same source again replaces its previous rows.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sn2enex/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/catalog.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			position INTEGER NOT NULL,
			note_id TEXT,
			content TEXT,
			creation_date TEXT,
			last_modified TEXT,
			tags TEXT,
			has_tags INTEGER NOT NULL,
			trashed INTEGER NOT NULL,
			markdown INTEGER NOT NULL,
			pinned INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_source ON notes(source)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_trashed ON notes(trashed)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a catalog build run.
type IngestSummary struct {
	Active  int
	Trashed int
	Tagged  int
}

// Total returns the number of notes ingested.
func (s IngestSummary) Total() int {
	return s.Active + s.Trashed
}

// Ingest indexes the export under the given source label, replacing any
// rows from a previous ingest of the same source. The whole ingest runs in
// one transaction; a failed ingest leaves the previous catalog intact.
func (s *Store) Ingest(ctx context.Context, export *types.Export, source string, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE source = ?`, source); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing previous catalog rows: %w", err)
	}

	var summary IngestSummary
	insert := func(n types.Note, position int, trashed bool) error {
		var tagsJSON any
		if n.HasTags() {
			data, err := json.Marshal(n.Tags)
			if err != nil {
				return fmt.Errorf("marshaling tags: %w", err)
			}
			tagsJSON = string(data)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notes (source, position, note_id, content, creation_date,
				last_modified, tags, has_tags, trashed, markdown, pinned)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			source, position, n.ID, n.Content, n.CreationDate, n.LastModified,
			tagsJSON, n.HasTags(), trashed, n.Markdown, n.Pinned)
		return err
	}

	for i, n := range export.ActiveNotes {
		if err := insert(n, i, false); err != nil {
			return IngestSummary{}, fmt.Errorf("inserting note %d: %w", i, err)
		}
		summary.Active++
		if n.HasTags() {
			summary.Tagged++
		}
	}
	for i, n := range export.TrashedNotes {
		if err := insert(n, i, true); err != nil {
			return IngestSummary{}, fmt.Errorf("inserting trashed note %d: %w", i, err)
		}
		summary.Trashed++
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing catalog: %w", err)
	}

	fmt.Fprintf(w, "cataloged %s: %d active (%d tagged), %d trashed\n",
		source, summary.Active, summary.Tagged, summary.Trashed)
	return summary, nil
}
