// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Author is stamped verbatim into every converted note's
	// note-attributes block. Empty means no author.
	Author string `json:"author" yaml:"author"`

	// CreateTitle synthesizes a title from the first line of each note's
	// content. Simplenote exports carry no explicit title field.
	CreateTitle bool `json:"create_title" yaml:"create_title"`

	// MaxNotes caps how many notes are converted in one run. Zero or
	// negative means unlimited. Useful for bisecting an export that trips
	// up a downstream importer.
	MaxNotes int `json:"max_notes" yaml:"max_notes"`

	// VerboseLevel controls diagnostic output: 0 silent, 1 run summary,
	// >1 adds the resolved filter flags.
	VerboseLevel int `json:"verbose_level" yaml:"verbose_level"`
}

// CatalogConfig holds settings for the catalog stage.
type CatalogConfig struct {
	// CatalogDir is the directory holding catalog.db and catalog exports.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
