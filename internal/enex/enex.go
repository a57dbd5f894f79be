// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enex renders Simplenote records as an ENEX (Evernote export)
// XML document.
//
// The rendering is deliberately textual. Timestamps are compacted by
// deleting separator characters, not reparsed as calendar dates, and no XML
// escaping is applied to content, title, tags, or author. Both are known
// limitations of the format conversion this package reproduces; importers
// (Evernote, Joplin) accept the result for ordinary note text.
package enex

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/sn2enex/internal/filter"
	"github.com/pdiddy/sn2enex/pkg/types"
)

// LineSep separates lines in the generated XML. CRLF matches the separator
// Simplenote itself uses inside note content.
const LineSep = "\r\n"

// titleSeparator delimits the first line of a note's content. Simplenote
// exports have no title field; the first line stands in for one.
const titleSeparator = "\r\n"

// noteTemplate is the per-note ENEX block. Placeholders: title, content,
// created, updated, author, tag elements. The note content is nested as its
// own XML document inside a CDATA section, per the ENML convention.
const noteTemplate = `
<note>
<title>%s</title>
<content>
    <![CDATA[<?xml version="1.0" encoding="UTF-8" standalone="no"?>
    <!DOCTYPE en-note SYSTEM "http://xml.evernote.com/pub/enml2.dtd">
    <en-note>
       %s
    </en-note>
    ]]>
</content>
<created>%s</created>
<updated>%s</updated>
<note-attributes>
    <author>%s</author>
</note-attributes>
%s
</note>
`

// headerTemplate opens the export document. The placeholder is the
// generation timestamp, captured once per run.
const headerTemplate = `
<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE en-export SYSTEM "http://xml.evernote.com/pub/evernote-export3.dtd">
<en-export export-date="%s">
`

const footer = `</en-export>`

// timestampStripper deletes the separators Simplenote uses in its timestamp
// strings. "2020-01-01T00:00:00.000Z" becomes "20200101T000000000Z", which
// is the ENEX shape with the fractional digits carried along.
var timestampStripper = strings.NewReplacer("-", "", ":", "", ".", "")

// CompactTimestamp converts an export timestamp string to the ENEX form by
// character deletion alone. It does not validate the input as a date; a
// non-Z zone suffix passes through verbatim.
func CompactTimestamp(ts string) string {
	return timestampStripper.Replace(ts)
}

// CleanupContent trims surrounding whitespace from a note body, then strips
// at most one leading and one trailing occurrence of sep. The operation is
// idempotent.
func CleanupContent(content, sep string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, sep)
	s = strings.TrimSuffix(s, sep)
	return s
}

// SynthesizeTitle returns the cleaned content up to the first line
// separator, or the whole content when no separator occurs.
func SynthesizeTitle(content string) string {
	title, _, _ := strings.Cut(content, titleSeparator)
	return title
}

// ConvertNote renders one note as an ENEX block, terminated by LineSep.
// A note without both timestamp fields is an error; conversion of the whole
// export aborts rather than emitting a partial record.
func ConvertNote(note types.Note, cfg types.ConvertConfig) (string, error) {
	if note.CreationDate == "" {
		return "", fmt.Errorf("missing creationDate field")
	}
	if note.LastModified == "" {
		return "", fmt.Errorf("missing lastModified field")
	}

	created := CompactTimestamp(note.CreationDate)
	updated := CompactTimestamp(note.LastModified)
	content := CleanupContent(note.Content, LineSep)

	title := ""
	if cfg.CreateTitle {
		title = SynthesizeTitle(content)
	}

	var tags strings.Builder
	for _, tag := range note.Tags {
		tags.WriteString("<tag>" + tag + "</tag>" + LineSep)
	}

	block := fmt.Sprintf(noteTemplate, title, content, created, updated, cfg.Author, tags.String())
	return block + LineSep, nil
}

// Result holds the counts from one conversion run. They feed diagnostics
// only; the ENEX document is unaffected.
type Result struct {
	Active    int
	Trashed   int
	Converted int
}

// Convert renders the export as a complete ENEX document. Active notes are
// visited in export order; each one passing the criteria is converted until
// the lesser of cfg.MaxNotes (when positive) and the active count have been
// accepted. Rejected notes do not count toward the cap. Diagnostics go to w
// when cfg.VerboseLevel is at least 1.
func Convert(export *types.Export, criteria filter.Criteria, cfg types.ConvertConfig, w io.Writer) (string, Result, error) {
	result := Result{
		Active:  len(export.ActiveNotes),
		Trashed: len(export.TrashedNotes),
	}

	if cfg.VerboseLevel >= 1 {
		fmt.Fprintf(w, "Active notes:   %d\n", result.Active)
		if export.TrashedNotes != nil {
			fmt.Fprintf(w, "Trashed notes:  %d -- will not be converted\n", result.Trashed)
		}
	}
	if cfg.VerboseLevel > 1 {
		fmt.Fprintf(w, "tag allow-list %v\n", criteria.Tags)
		fmt.Fprintf(w, "match_tagged %v\n", criteria.MatchTagged)
		fmt.Fprintf(w, "match_untagged %v\n", criteria.MatchUntagged)
		fmt.Fprintf(w, "invert_match %v\n", criteria.Invert)
	}

	limit := result.Active
	if cfg.MaxNotes > 0 && cfg.MaxNotes < limit {
		limit = cfg.MaxNotes
	}

	var blocks strings.Builder
	for i, note := range export.ActiveNotes {
		if result.Converted >= limit {
			break
		}
		if !criteria.Match(note) {
			continue
		}
		block, err := ConvertNote(note, cfg)
		if err != nil {
			return "", result, fmt.Errorf("note %d: %w", i, err)
		}
		blocks.WriteString(block)
		result.Converted++
	}

	if cfg.VerboseLevel >= 1 {
		fmt.Fprintf(w, "Converted %d notes\n", result.Converted)
	}

	return document(blocks.String(), time.Now()), result, nil
}

// document wraps the concatenated note blocks in the export envelope.
func document(blocks string, exportedAt time.Time) string {
	header := fmt.Sprintf(headerTemplate, exportTimestamp(exportedAt))
	return header + LineSep + blocks + LineSep + footer
}

// exportTimestamp formats the generation time for the export-date attribute
// in the same compact shape as the per-note timestamps.
func exportTimestamp(t time.Time) string {
	return t.UTC().Format("20060102150405") + "Z"
}
