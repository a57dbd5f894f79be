// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enex

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/sn2enex/internal/filter"
	"github.com/pdiddy/sn2enex/pkg/types"
)

func note(content string, tags ...string) types.Note {
	n := types.Note{
		Content:      content,
		CreationDate: "2020-01-01T00:00:00.000Z",
		LastModified: "2020-01-01T00:00:00.000Z",
	}
	if tags != nil {
		n.Tags = tags
	}
	return n
}

func TestCompactTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-01T00:00:00.000Z", "20200101T000000000Z"},
		{"2021-06-05T10:11:12.345Z", "20210605T101112345Z"},
		// Non-Z offsets survive as-is apart from the stripped separators.
		{"2021-06-05T10:11:12.345+01:00", "20210605T101112345+0100"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CompactTimestamp(tt.in); got != tt.want {
			t.Errorf("CompactTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanupContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Hello", "Hello"},
		{"surrounding whitespace trimmed", "  Hello  ", "Hello"},
		{"whitespace trim covers CRLF", "\r\nHello\r\n", "Hello"},
		{"interior separators kept", "Line1\r\nLine2", "Line1\r\nLine2"},
		{"empty content", "", ""},
		{"whitespace only", " \t\r\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanupContent(tt.in, LineSep); got != tt.want {
				t.Errorf("CleanupContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanupContent_Idempotent(t *testing.T) {
	inputs := []string{"Hello", "  Hello  ", "Line1\r\nLine2", "\r\n\r\nX\r\n\r\n", ""}
	for _, in := range inputs {
		once := CleanupContent(in, LineSep)
		twice := CleanupContent(once, LineSep)
		if once != twice {
			t.Errorf("CleanupContent not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSynthesizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Line1\r\nLine2\r\nLine3", "Line1"},
		{"Single line", "Single line"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SynthesizeTitle(tt.in); got != tt.want {
			t.Errorf("SynthesizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertNote(t *testing.T) {
	n := note("Hello", "x")
	block, err := ConvertNote(n, types.ConvertConfig{})
	if err != nil {
		t.Fatalf("ConvertNote: %v", err)
	}

	for _, want := range []string{
		"<title></title>",
		"<created>20200101T000000000Z</created>",
		"<updated>20200101T000000000Z</updated>",
		"<tag>x</tag>",
		"<author></author>",
		"<en-note>",
		"<![CDATA[",
		"Hello",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
	if !strings.HasSuffix(block, LineSep) {
		t.Error("block should end with the line separator")
	}
}

func TestConvertNote_TitleAndAuthor(t *testing.T) {
	n := note("First line\r\nRest of the note")
	cfg := types.ConvertConfig{Author: "Ada", CreateTitle: true}

	block, err := ConvertNote(n, cfg)
	if err != nil {
		t.Fatalf("ConvertNote: %v", err)
	}

	if !strings.Contains(block, "<title>First line</title>") {
		t.Errorf("expected synthesized title, got:\n%s", block)
	}
	if !strings.Contains(block, "<author>Ada</author>") {
		t.Errorf("expected author, got:\n%s", block)
	}
}

func TestConvertNote_TagOrder(t *testing.T) {
	n := note("body", "zebra", "alpha", "mango")
	block, err := ConvertNote(n, types.ConvertConfig{})
	if err != nil {
		t.Fatalf("ConvertNote: %v", err)
	}

	want := "<tag>zebra</tag>" + LineSep + "<tag>alpha</tag>" + LineSep + "<tag>mango</tag>" + LineSep
	if !strings.Contains(block, want) {
		t.Errorf("tags not in export order:\n%s", block)
	}
}

// Markup in note fields is embedded verbatim; the converter performs no XML
// escaping.
func TestConvertNote_NoEscaping(t *testing.T) {
	n := note("a < b & c")
	block, err := ConvertNote(n, types.ConvertConfig{Author: "A & B"})
	if err != nil {
		t.Fatalf("ConvertNote: %v", err)
	}
	if !strings.Contains(block, "a < b & c") {
		t.Error("content should pass through unescaped")
	}
	if !strings.Contains(block, "<author>A & B</author>") {
		t.Error("author should pass through unescaped")
	}
}

func TestConvertNote_MissingTimestamps(t *testing.T) {
	tests := []struct {
		name string
		note types.Note
		want string
	}{
		{
			name: "missing creationDate",
			note: types.Note{Content: "x", LastModified: "2020-01-01T00:00:00.000Z"},
			want: "creationDate",
		},
		{
			name: "missing lastModified",
			note: types.Note{Content: "x", CreationDate: "2020-01-01T00:00:00.000Z"},
			want: "lastModified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertNote(tt.note, types.ConvertConfig{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %s", err, tt.want)
			}
		})
	}
}

func TestConvert_EndToEnd(t *testing.T) {
	export := &types.Export{ActiveNotes: []types.Note{note("Hello", "x")}}

	doc, result, err := Convert(export, filter.Criteria{}, types.ConvertConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Converted != 1 || result.Active != 1 {
		t.Errorf("result = %+v, want 1 active, 1 converted", result)
	}
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE en-export SYSTEM "http://xml.evernote.com/pub/evernote-export3.dtd">`,
		`export-date="`,
		"<created>20200101T000000000Z</created>",
		"<tag>x</tag>",
		"<title></title>",
		"<author></author>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if !strings.HasSuffix(doc, footer) {
		t.Error("document should end with the closing footer")
	}
}

func TestConvert_CapStopsAfterLimit(t *testing.T) {
	export := &types.Export{}
	for i := 0; i < 5; i++ {
		export.ActiveNotes = append(export.ActiveNotes, note(fmt.Sprintf("note-%d", i)))
	}

	doc, result, err := Convert(export, filter.Criteria{}, types.ConvertConfig{MaxNotes: 2}, io.Discard)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if strings.Count(doc, "<note>") != 2 {
		t.Errorf("document should contain exactly 2 note blocks:\n%s", doc)
	}
	// Original order: the first two notes, not an arbitrary pair.
	if !strings.Contains(doc, "note-0") || !strings.Contains(doc, "note-1") || strings.Contains(doc, "note-2") {
		t.Error("cap should keep the first notes in export order")
	}
}

func TestConvert_RejectedNotesDoNotCountTowardCap(t *testing.T) {
	export := &types.Export{ActiveNotes: []types.Note{
		note("skipped-0"),
		note("kept-0", "keep"),
		note("skipped-1"),
		note("kept-1", "keep"),
	}}
	criteria := filter.Criteria{Tags: []string{"keep"}}

	doc, result, err := Convert(export, criteria, types.ConvertConfig{MaxNotes: 2}, io.Discard)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if strings.Contains(doc, "skipped-0") || strings.Contains(doc, "skipped-1") {
		t.Error("rejected notes should not appear in the document")
	}
	if !strings.Contains(doc, "kept-1") {
		t.Error("rejected notes must not consume the conversion cap")
	}
}

func TestConvert_MissingTimestampAborts(t *testing.T) {
	export := &types.Export{ActiveNotes: []types.Note{
		note("fine"),
		{Content: "broken"},
	}}

	_, _, err := Convert(export, filter.Criteria{}, types.ConvertConfig{}, io.Discard)
	if err == nil {
		t.Fatal("expected error for note without timestamps")
	}
	if !strings.Contains(err.Error(), "note 1") {
		t.Errorf("error %q should name the offending note index", err)
	}
}

func TestConvert_Diagnostics(t *testing.T) {
	export := &types.Export{
		ActiveNotes:  []types.Note{note("a"), note("b")},
		TrashedNotes: []types.Note{note("t")},
	}

	var diag bytes.Buffer
	_, _, err := Convert(export, filter.Criteria{MatchTagged: true}, types.ConvertConfig{VerboseLevel: 2}, &diag)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	out := diag.String()
	for _, want := range []string{
		"Active notes:   2",
		"Trashed notes:  1",
		"match_tagged true",
		"match_untagged false",
		"Converted 0 notes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics missing %q:\n%s", want, out)
		}
	}
}

func TestConvert_SilentByDefault(t *testing.T) {
	export := &types.Export{ActiveNotes: []types.Note{note("a")}}

	var diag bytes.Buffer
	if _, _, err := Convert(export, filter.Criteria{}, types.ConvertConfig{}, &diag); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if diag.Len() != 0 {
		t.Errorf("verbose level 0 should produce no diagnostics, got %q", diag.String())
	}
}

func TestExportTimestampShape(t *testing.T) {
	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := document("", at)
	if !strings.Contains(doc, `export-date="20200102030405Z"`) {
		t.Errorf("unexpected export-date in:\n%s", doc)
	}
}
