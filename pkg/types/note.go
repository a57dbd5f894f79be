// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Note holds one record from a Simplenote JSON export.
//
// Tags distinguishes "field absent" (nil) from "field present but empty"
// (non-nil, zero length); the tag-presence filters depend on that distinction.
// The slice preserves the export's tag order.
type Note struct {
	// ID is the Simplenote note identifier. Not required for conversion.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Content is the note body. Absent content converts as an empty string.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// CreationDate is the export timestamp string, e.g.
	// "2020-01-01T00:00:00.000Z". Required for conversion.
	CreationDate string `json:"creationDate" yaml:"creation_date"`

	// LastModified is the last-modification timestamp string, same shape as
	// CreationDate. Required for conversion.
	LastModified string `json:"lastModified" yaml:"last_modified"`

	// Tags lists the note's tags, case-sensitive, in export order.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Markdown reports whether Simplenote rendered the note as Markdown.
	// Carried through for catalog inspection; conversion ignores it.
	Markdown bool `json:"markdown,omitempty" yaml:"markdown,omitempty"`

	// Pinned reports whether the note was pinned in Simplenote.
	Pinned bool `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// HasTags reports whether the note carries a tags field at all. A note
// exported with "tags": [] still counts as tagged for filter purposes.
func (n Note) HasTags() bool {
	return n.Tags != nil
}

// Export is the envelope of a Simplenote JSON export file.
type Export struct {
	// ActiveNotes are the notes eligible for conversion, in export order.
	ActiveNotes []Note `json:"activeNotes"`

	// TrashedNotes are deleted-but-not-purged notes. They are never
	// converted; they only appear in diagnostics.
	TrashedNotes []Note `json:"trashedNotes,omitempty"`
}
