// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package simplenote loads Simplenote JSON export files.
//
// An export is a single JSON document with an activeNotes array and an
// optional trashedNotes array. The whole file is decoded in one pass; a
// malformed or unreadable file is a fatal error and no partial result is
// returned.
package simplenote

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/sn2enex/pkg/types"
)

// Load reads and decodes the Simplenote export at path. An export whose
// envelope omits activeNotes yields an empty (non-nil) active list so
// callers can iterate without a nil check.
func Load(path string) (*types.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file %s: %w", path, err)
	}

	var export types.Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing export file %s: %w", path, err)
	}

	if export.ActiveNotes == nil {
		export.ActiveNotes = []types.Note{}
	}
	return &export, nil
}
