// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfworks/internal/scan"
	"github.com/pdiddy/pdfworks/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "Enumerate PDF files under a directory tree",
	Long: `List enumerates PDF files under the given directory (default: the
current directory). The default strategy walks the tree natively; --strategy
shell runs the platform file-listing command instead, which has survived
trees deep enough to break native walks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	long, _ := cmd.Flags().GetBool("long")
	cfg := scanConfig(cmd)
	cfg.WithInfo = cfg.WithInfo || long

	scanner, err := scan.New(cfg)
	if err != nil {
		return err
	}

	entries, err := scanner.Scan(cmd.Context(), root)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if long {
			fmt.Printf("%10d  %s  %s\n", e.Size, e.ModTime.Format("2006-01-02 15:04"), e.Path)
		} else {
			fmt.Println(e.Path)
		}
	}
	fmt.Printf("\n%d PDF file(s)\n", len(entries))
	return nil
}

// scanConfig merges the --strategy flag over the configured default.
func scanConfig(cmd *cobra.Command) types.ScanConfig {
	strategy, _ := cmd.Flags().GetString("strategy")
	if strategy == "" {
		strategy = viper.GetString("scan.strategy")
	}
	return types.ScanConfig{
		Strategy: types.ScanStrategy(strategy),
		WithInfo: viper.GetBool("scan.with_info"),
	}
}

func init() {
	listCmd.Flags().String("strategy", "", "enumeration strategy: walk or shell (default walk)")
	listCmd.Flags().Bool("long", false, "include file size and modification time")

	rootCmd.AddCommand(listCmd)
}
