// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Report which external poppler binaries are available",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range newToolchain().Status() {
			if s.Available {
				fmt.Printf("%-10s ok   %s\n", s.Name, s.Path)
			} else {
				fmt.Printf("%-10s MISSING (install poppler-utils)\n", s.Name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
