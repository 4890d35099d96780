// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfworks/internal/meta"
	"github.com/pdiddy/pdfworks/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info [pdf]",
	Short: "Read document metadata via pdfinfo",
	Long: `Info reads document properties (title, author, page count, page size,
dates, encryption) from a PDF using pdfinfo. By default a parsed summary is
printed; --raw prints the tool's own lines and --json a structured record.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var textCmd = &cobra.Command{
	Use:   "text [pdf]",
	Short: "Preview first-page text via pdftotext",
	Long: `Text prints the first page of a PDF as plain text using pdftotext,
trimmed to a line limit for quick inspection of what a document contains.`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func runInfo(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	jsonOut, _ := cmd.Flags().GetBool("json")

	reader, err := meta.NewReader(newToolchain())
	if err != nil {
		return err
	}

	if raw {
		lines, err := reader.Lines(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	}

	doc, err := reader.Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	printDocument(doc)
	return nil
}

func printDocument(doc types.Document) {
	show := func(label, value string) {
		if value != "" {
			fmt.Printf("%-12s %s\n", label+":", value)
		}
	}
	show("Title", doc.Title)
	show("Author", doc.Author)
	show("Creator", doc.Creator)
	show("Producer", doc.Producer)
	if !doc.CreationDate.IsZero() {
		show("Created", doc.CreationDate.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%-12s %d\n", "Pages:", doc.Pages)

	size := fmt.Sprintf("%.1f x %.1f pts", doc.PageSize.WidthPts, doc.PageSize.HeightPts)
	if doc.PageSize.Name != "" {
		size += fmt.Sprintf(" (%s, %s)", doc.PageSize.Name, doc.PageSize.Orientation())
	} else {
		size += fmt.Sprintf(" (%s)", doc.PageSize.Orientation())
	}
	show("Page size", size)
	show("PDF version", doc.PDFVersion)
	if doc.Encrypted {
		fmt.Printf("%-12s yes\n", "Encrypted:")
	}
}

func runText(cmd *cobra.Command, args []string) error {
	maxLines, _ := cmd.Flags().GetInt("lines")

	reader, err := meta.NewReader(newToolchain())
	if err != nil {
		return err
	}

	lines, err := reader.ExtractText(cmd.Context(), args[0], maxLines)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Println("(no text extracted)")
		return nil
	}
	for _, l := range lines {
		fmt.Println(l)
	}
	return nil
}

func init() {
	infoCmd.Flags().Bool("raw", false, "print pdfinfo output lines unparsed")
	infoCmd.Flags().Bool("json", false, "print metadata as JSON")

	textCmd.Flags().Int("lines", 20, "maximum lines to print (0 = no limit)")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(textCmd)
}
