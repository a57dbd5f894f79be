// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCriteriaFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	want := Criteria{
		Tags:          []string{"linux", "recipes"},
		MatchUntagged: true,
		Invert:        true,
	}

	if err := WriteCriteriaFile(path, want); err != nil {
		t.Fatalf("WriteCriteriaFile: %v", err)
	}
	got, err := ReadCriteriaFile(path)
	if err != nil {
		t.Fatalf("ReadCriteriaFile: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestReadCriteriaFile_Errors(t *testing.T) {
	if _, err := ReadCriteriaFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("filter: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCriteriaFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
