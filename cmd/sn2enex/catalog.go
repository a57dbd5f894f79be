// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sn2enex/internal/catalog"
	"github.com/pdiddy/sn2enex/internal/simplenote"
	"github.com/pdiddy/sn2enex/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect a Simplenote export through a local SQLite catalog",
	Long: `Catalog indexes a Simplenote export into a local SQLite database so large
exports can be inspected before (or after) conversion: audit which tags are
in use, list untagged notes, or locate the note a downstream importer
chokes on. Use subcommands to build the catalog, query it, or export it.`,
}

// --- build subcommand ---

var catalogBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index a Simplenote export into the catalog",
	RunE:  runCatalogBuild,
}

func runCatalogBuild(cmd *cobra.Command, args []string) error {
	jsonFile := stringSetting(cmd, "json-file", "convert.json_file")
	if jsonFile == "" {
		return fmt.Errorf("no export file: provide --json-file or set convert.json_file in the config")
	}

	export, err := simplenote.Load(jsonFile)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), export, filepath.Base(jsonFile), os.Stdout)
	return err
}

// --- notes subcommand ---

var catalogNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List cataloged notes with optional filters",
	RunE:  runCatalogNotes,
}

func runCatalogNotes(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Notes(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatNotesOutput(rows, jsonOutput)
}

func formatNotesOutput(rows []catalog.NoteRow, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-24s  %s\n", "Pos", "Content", "Modified", "Tags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range rows {
		content := firstLine(r.Content)
		if len(content) > 50 {
			content = content[:47] + "..."
		}
		pos := fmt.Sprintf("%d", r.Position)
		if r.Trashed {
			pos += "T"
		}
		fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-24s  %s\n",
			pos, content, r.LastModified, strings.Join(r.Tags, ","))
	}

	fmt.Fprintf(os.Stdout, "\n%d notes\n", len(rows))
	return nil
}

// firstLine truncates multi-line content at the first line break.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// --- tags subcommand ---

var catalogTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag histogram over active notes",
	RunE:  runCatalogTags,
}

func runCatalogTags(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.TagCounts(context.Background())
	if err != nil {
		return err
	}

	if len(counts) == 0 {
		fmt.Println("No tags in catalog.")
		return nil
	}
	for _, tc := range counts {
		fmt.Fprintf(os.Stdout, "%6d  %s\n", tc.Count, tc.Tag)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to export.yaml or
export.json in the catalog directory. Supports the same filter flags as
notes for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	dir := stringSetting(cmd, "catalog-dir", "catalog.catalog_dir")
	if dir == "" {
		dir = "catalog"
	}
	return types.CatalogConfig{
		CatalogDir: dir,
		MaxResults: intSetting(cmd, "max-results", "catalog.max_results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command) catalog.QueryOptions {
	tag, _ := cmd.Flags().GetString("tag")
	untagged, _ := cmd.Flags().GetBool("untagged")
	contains, _ := cmd.Flags().GetString("contains")
	trashed, _ := cmd.Flags().GetBool("trashed")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Tag:            tag,
		UntaggedOnly:   untagged,
		Contains:       contains,
		IncludeTrashed: trashed,
		MaxResults:     limit,
	}
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", "keep only notes carrying this tag (case-sensitive)")
	cmd.Flags().Bool("untagged", false, "keep only notes without a tags field")
	cmd.Flags().String("contains", "", "keep only notes whose content includes this text")
	cmd.Flags().Bool("trashed", false, "include trashed notes")
	cmd.Flags().Int("limit", 0, "maximum results (0 = store default)")
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory for the catalog database")
	catalogCmd.PersistentFlags().Int("max-results", 0, "default maximum query results")

	catalogBuildCmd.Flags().String("json-file", "", "Simplenote export file (JSON) to index")

	addQueryFlags(catalogNotesCmd)
	catalogNotesCmd.Flags().Bool("json", false, "output notes as JSON")

	addQueryFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogBuildCmd, catalogNotesCmd, catalogTagsCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
