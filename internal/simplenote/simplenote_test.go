// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package simplenote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantActive  int
		wantTrashed int
		errContains string
	}{
		{
			name: "active and trashed notes",
			content: `{
				"activeNotes": [
					{"content": "Hello", "creationDate": "2020-01-01T00:00:00.000Z", "lastModified": "2020-01-02T00:00:00.000Z", "tags": ["x"]},
					{"content": "World", "creationDate": "2020-02-01T00:00:00.000Z", "lastModified": "2020-02-02T00:00:00.000Z"}
				],
				"trashedNotes": [
					{"content": "Gone", "creationDate": "2019-01-01T00:00:00.000Z", "lastModified": "2019-01-01T00:00:00.000Z"}
				]
			}`,
			wantActive:  2,
			wantTrashed: 1,
		},
		{
			name:       "missing activeNotes yields empty list",
			content:    `{"trashedNotes": []}`,
			wantActive: 0,
		},
		{
			name:        "malformed JSON",
			content:     `{"activeNotes": [`,
			errContains: "parsing export file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeExport(t, tt.content)

			export, err := Load(path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, export.ActiveNotes)
			assert.Len(t, export.ActiveNotes, tt.wantActive)
			assert.Len(t, export.TrashedNotes, tt.wantTrashed)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading export file")
}

func TestLoad_TagPresence(t *testing.T) {
	path := writeExport(t, `{
		"activeNotes": [
			{"content": "tagged", "creationDate": "2020-01-01T00:00:00.000Z", "lastModified": "2020-01-01T00:00:00.000Z", "tags": ["a", "b"]},
			{"content": "empty tags", "creationDate": "2020-01-01T00:00:00.000Z", "lastModified": "2020-01-01T00:00:00.000Z", "tags": []},
			{"content": "untagged", "creationDate": "2020-01-01T00:00:00.000Z", "lastModified": "2020-01-01T00:00:00.000Z"}
		]
	}`)

	export, err := Load(path)
	require.NoError(t, err)
	require.Len(t, export.ActiveNotes, 3)

	// An explicit empty array still counts as a tags field; only a missing
	// field does not.
	assert.True(t, export.ActiveNotes[0].HasTags())
	assert.True(t, export.ActiveNotes[1].HasTags())
	assert.False(t, export.ActiveNotes[2].HasTags())

	assert.Equal(t, []string{"a", "b"}, export.ActiveNotes[0].Tags)
}
