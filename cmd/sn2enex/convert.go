// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sn2enex/internal/enex"
	"github.com/pdiddy/sn2enex/internal/filter"
	"github.com/pdiddy/sn2enex/internal/simplenote"
	"github.com/pdiddy/sn2enex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Simplenote export to ENEX on stdout",
	Long: `Convert reads a Simplenote JSON export and writes an ENEX document to
stdout. Notes can be filtered by tag: --tag-filter matches notes sharing at
least one tag with a comma-separated allow-list (case-sensitive),
--match-tagged and --match-untagged select by tag presence, and
--invert-match flips the combined result. With no filter flags every active
note is converted. Trashed notes are never converted.

Note content, tags, and author are embedded without XML escaping; notes whose
text contains markup characters may need post-processing before import.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	jsonFile := stringSetting(cmd, "json-file", "convert.json_file")
	if jsonFile == "" {
		return fmt.Errorf("no export file: provide --json-file or set convert.json_file in the config")
	}

	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := types.ConvertConfig{
		Author:       stringSetting(cmd, "author", "convert.author"),
		CreateTitle:  boolSetting(cmd, "create-title", "convert.create_title"),
		MaxNotes:     intSetting(cmd, "number", "convert.max_notes"),
		VerboseLevel: intSetting(cmd, "verbose-level", "convert.verbose_level"),
	}

	export, err := simplenote.Load(jsonFile)
	if err != nil {
		return err
	}

	if cfg.VerboseLevel >= 1 {
		fmt.Fprintf(os.Stderr, "Processing file: %s\n", jsonFile)
		fmt.Fprintf(os.Stderr, "Notes author:   %s\n", cfg.Author)
	}

	doc, _, err := enex.Convert(export, criteria, cfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Println(doc)
	return nil
}

// criteriaFromFlags builds the filter criteria. A --filter-file supplies the
// base value; explicitly set flags override its individual fields.
func criteriaFromFlags(cmd *cobra.Command) (filter.Criteria, error) {
	var criteria filter.Criteria

	if filterFile := stringSetting(cmd, "filter-file", "convert.filter_file"); filterFile != "" {
		c, err := filter.ReadCriteriaFile(filterFile)
		if err != nil {
			return filter.Criteria{}, err
		}
		criteria = c
	}

	if cmd.Flags().Changed("tag-filter") {
		tagFilter, _ := cmd.Flags().GetString("tag-filter")
		criteria.Tags = filter.ParseTagList(tagFilter)
	} else if criteria.Tags == nil && viper.IsSet("convert.tag_filter") {
		criteria.Tags = filter.ParseTagList(viper.GetString("convert.tag_filter"))
	}
	if cmd.Flags().Changed("match-tagged") {
		criteria.MatchTagged, _ = cmd.Flags().GetBool("match-tagged")
	} else if !criteria.MatchTagged {
		criteria.MatchTagged = viper.GetBool("convert.match_tagged")
	}
	if cmd.Flags().Changed("match-untagged") {
		criteria.MatchUntagged, _ = cmd.Flags().GetBool("match-untagged")
	} else if !criteria.MatchUntagged {
		criteria.MatchUntagged = viper.GetBool("convert.match_untagged")
	}
	if cmd.Flags().Changed("invert-match") {
		criteria.Invert, _ = cmd.Flags().GetBool("invert-match")
	} else if !criteria.Invert {
		criteria.Invert = viper.GetBool("convert.invert_match")
	}

	return criteria, nil
}

func init() {
	convertCmd.Flags().String("json-file", "", "Simplenote export file (JSON) to convert")
	convertCmd.Flags().String("author", "", "author recorded on all converted notes")
	convertCmd.Flags().Bool("create-title", false, "derive each note's title from the first line of its content")
	convertCmd.Flags().String("tag-filter", "", "comma-separated tag allow-list; converts notes matching any listed tag")
	convertCmd.Flags().Bool("match-tagged", false, "convert notes that have tags")
	convertCmd.Flags().Bool("match-untagged", false, "convert notes without tags")
	convertCmd.Flags().Bool("invert-match", false, "invert the combined filter result")
	convertCmd.Flags().String("filter-file", "", "YAML file with saved filter criteria")
	convertCmd.Flags().Int("verbose-level", 0, "diagnostic verbosity on stderr (0 = silent)")
	convertCmd.Flags().Int("number", 0, "maximum number of notes to convert (0 = all)")

	rootCmd.AddCommand(convertCmd)
}
