// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfworks CLI.
// See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfworks/internal/toolchain"
	"github.com/pdiddy/pdfworks/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfworks CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfworks",
	Short: "Shell out to poppler for PDF images, metadata, and listings",
	Long: `pdfworks wraps the poppler command-line tools (pdftoppm, pdfinfo,
pdftotext) behind one CLI. It rasterizes PDF pages to PNG images and
thumbnails, reads document metadata, previews page text, enumerates PDF
files under a directory tree, and keeps a small SQLite catalog of what it
has seen.

All PDF decoding happens in the external tools; pdfworks itself only moves
bytes, so it needs poppler-utils installed.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfworks.yaml or ~/.config/pdfworks/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfworks")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfworks"))
		}
	}

	viper.SetEnvPrefix("PDFWORKS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newToolchain builds the toolchain from configured tool path overrides.
func newToolchain() *toolchain.Toolchain {
	return toolchain.New(types.ToolsConfig{
		Pdftoppm:  viper.GetString("tools.pdftoppm"),
		Pdfinfo:   viper.GetString("tools.pdfinfo"),
		Pdftotext: viper.GetString("tools.pdftotext"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
