// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter decides which notes a conversion run emits.
//
// A Criteria value is immutable once built; Match is a pure function of the
// criteria and the note. Tag matching is case-sensitive, mirroring the
// behavior of "tag:" search in Simplenote.
package filter

import (
	"strings"

	"github.com/pdiddy/sn2enex/pkg/types"
)

// Criteria holds the tag-based selection rules for one conversion run.
type Criteria struct {
	// Tags is the allow-list: a note matches when at least one of its tags
	// appears here. Empty means no allow-list filtering.
	Tags []string `yaml:"tags,omitempty"`

	// MatchTagged selects notes that carry a tags field.
	MatchTagged bool `yaml:"match_tagged"`

	// MatchUntagged selects notes with no tags field at all. A note with
	// an empty tag list is not untagged.
	MatchUntagged bool `yaml:"match_untagged"`

	// Invert flips the combined match result. It has no effect when the
	// criteria are otherwise zero.
	Invert bool `yaml:"invert"`
}

// ParseTagList splits the comma-separated CLI form of the allow-list.
// An empty string yields nil (no allow-list).
func ParseTagList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// IsZero reports whether no selection rule is active. Invert alone does not
// count: with nothing to invert, every note is accepted.
func (c Criteria) IsZero() bool {
	return len(c.Tags) == 0 && !c.MatchTagged && !c.MatchUntagged
}

// Match reports whether the note should be converted.
//
// With zero criteria every note matches, regardless of Invert. Otherwise the
// individual rules combine by OR and the result is XORed with Invert:
//
//	matched = (allow-list hit) OR (untagged and MatchUntagged) OR (tagged and MatchTagged)
//	result  = matched != Invert
//
// The OR/XOR combination admits some odd but intentional corner cases:
// MatchTagged plus MatchUntagged accepts everything, an allow-list plus
// MatchUntagged accepts all untagged notes as well as allow-listed tagged
// ones, and MatchTagged plus Invert is equivalent to MatchUntagged.
func (c Criteria) Match(note types.Note) bool {
	if c.IsZero() {
		return true
	}

	matched := false
	if len(c.Tags) > 0 && note.HasTags() && intersects(c.Tags, note.Tags) {
		matched = true
	}
	if c.MatchUntagged && !note.HasTags() {
		matched = true
	}
	if c.MatchTagged && note.HasTags() {
		matched = true
	}
	return matched != c.Invert
}

// intersects reports whether the two tag lists share at least one exact
// (case-sensitive) element.
func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
