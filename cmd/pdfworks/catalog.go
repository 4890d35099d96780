// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfworks/internal/catalog"
	"github.com/pdiddy/pdfworks/internal/meta"
	"github.com/pdiddy/pdfworks/internal/scan"
	"github.com/pdiddy/pdfworks/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the document catalog (index, find, export)",
	Long: `Catalog maintains a local SQLite index of scanned PDFs and their
metadata. Use subcommands to index a directory tree, query the index, or
export it. Unchanged files are skipped on subsequent runs.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Scan a directory tree and index PDF metadata",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg := scanConfig(cmd)
	cfg.WithInfo = true
	scanner, err := scan.New(cfg)
	if err != nil {
		return err
	}

	entries, err := scanner.Scan(cmd.Context(), root)
	if err != nil {
		return err
	}

	reader, err := meta.NewReader(newToolchain())
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(cmd.Context(), entries, reader, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- find subcommand ---

var catalogFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Find searches the catalog using full-text search over title, author,
producer, and path, structured filters, or a combination of both.`,
	RunE: runCatalogFind,
}

func runCatalogFind(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --author, or --encrypted")
	}

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFindOutput(results, jsonOutput)
}

func formatFindOutput(results []catalog.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-24s  %5s  %-8s  %s\n",
		"Title", "Author", "Pages", "Size", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		author := r.Author
		if len(author) > 24 {
			author = author[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-24s  %5d  %-8s  %s\n",
			title, author, r.Pages, r.PageSize.Name, r.Path)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to export.yaml or
export.json under the catalog index directory. Supports the same filter
flags as find.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to catalog index export.yaml")
	case "json":
		if err := store.ExportJSON(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to catalog index export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = viper.GetString("catalog.catalog_dir")
	}
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	author, _ := cmd.Flags().GetString("author")
	encrypted, _ := cmd.Flags().GetBool("encrypted")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:         queryText,
		Author:        author,
		EncryptedOnly: encrypted,
		MaxResults:    limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "", "base directory for the catalog (contains index/)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Index flags.
	catalogIndexCmd.Flags().String("strategy", "", "enumeration strategy: walk or shell (default walk)")

	// Find flags.
	catalogFindCmd.Flags().String("query", "", "full-text search query")
	catalogFindCmd.Flags().String("author", "", "filter by exact author")
	catalogFindCmd.Flags().Bool("encrypted", false, "only encrypted documents")
	catalogFindCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogFindCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("author", "", "filter by exact author for partial export")
	catalogExportCmd.Flags().Bool("encrypted", false, "only encrypted documents")
	catalogExportCmd.Flags().Int("limit", 0, "maximum documents to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogFindCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
