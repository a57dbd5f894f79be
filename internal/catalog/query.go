// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds the filters for catalog note queries.
type QueryOptions struct {
	// Tag keeps only notes carrying this exact tag (case-sensitive).
	Tag string

	// UntaggedOnly keeps only notes with no tags field.
	UntaggedOnly bool

	// Contains keeps only notes whose content includes this substring.
	Contains string

	// IncludeTrashed also returns trashed notes.
	IncludeTrashed bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// NoteRow is one catalog entry.
type NoteRow struct {
	Position     int      `json:"position" yaml:"position"`
	NoteID       string   `json:"note_id,omitempty" yaml:"note_id,omitempty"`
	Content      string   `json:"content" yaml:"content"`
	CreationDate string   `json:"creation_date" yaml:"creation_date"`
	LastModified string   `json:"last_modified" yaml:"last_modified"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Trashed      bool     `json:"trashed,omitempty" yaml:"trashed,omitempty"`
}

// Notes queries the catalog, ordered as the export was ordered (active
// before trashed, then by position).
func (s *Store) Notes(ctx context.Context, opts QueryOptions) ([]NoteRow, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT position, note_id, content, creation_date, last_modified, tags, trashed
		 FROM notes
		 WHERE 1=1`)

	if !opts.IncludeTrashed {
		qb.WriteString(` AND trashed = 0`)
	}
	if opts.Tag != "" {
		qb.WriteString(` AND tags IS NOT NULL
			AND EXISTS (SELECT 1 FROM json_each(notes.tags) WHERE value = ?)`)
		args = append(args, opts.Tag)
	}
	if opts.UntaggedOnly {
		qb.WriteString(` AND has_tags = 0`)
	}
	if opts.Contains != "" {
		qb.WriteString(` AND instr(content, ?) > 0`)
		args = append(args, opts.Contains)
	}

	qb.WriteString(` ORDER BY trashed, position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []NoteRow
	for rows.Next() {
		var (
			r        NoteRow
			noteID   sql.NullString
			tagsJSON sql.NullString
		)
		if err := rows.Scan(&r.Position, &noteID, &r.Content, &r.CreationDate,
			&r.LastModified, &tagsJSON, &r.Trashed); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		r.NoteID = noteID.String
		if tagsJSON.Valid {
			if err := json.Unmarshal([]byte(tagsJSON.String), &r.Tags); err != nil {
				return nil, fmt.Errorf("decoding tags for note %d: %w", r.Position, err)
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// TagCount is one entry in the tag histogram.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// TagCounts returns the tag histogram over active notes, most frequent
// first, ties broken alphabetically.
func (s *Store) TagCounts(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT j.value, COUNT(*) AS n
		 FROM notes, json_each(notes.tags) AS j
		 WHERE notes.trashed = 0 AND notes.tags IS NOT NULL
		 GROUP BY j.value
		 ORDER BY n DESC, j.value`)
	if err != nil {
		return nil, fmt.Errorf("querying tag counts: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
