// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// CriteriaFile is the on-disk representation of a saved filter. A curated
// filter set (say, the tags worth migrating) can be reused across runs
// without retyping the flags.
type CriteriaFile struct {
	Filter Criteria `yaml:"filter"`
}

// WriteCriteriaFile saves the criteria to a YAML file.
func WriteCriteriaFile(path string, c Criteria) error {
	data, err := yaml.Marshal(&CriteriaFile{Filter: c})
	if err != nil {
		return fmt.Errorf("marshaling criteria file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadCriteriaFile loads a previously saved criteria file from disk.
func ReadCriteriaFile(path string) (Criteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Criteria{}, fmt.Errorf("reading criteria file: %w", err)
	}
	var cf CriteriaFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return Criteria{}, fmt.Errorf("parsing criteria file: %w", err)
	}
	return cf.Filter, nil
}
