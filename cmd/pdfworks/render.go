// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfworks/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [pdfs...]",
	Short: "Rasterize PDF pages to PNG images",
	Long: `Render rasterizes one page of each given PDF to a PNG file using
pdftoppm. Output files land in the output directory named after the source
file; existing outputs are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail [pdfs...]",
	Short: "Render first-page PNG thumbnails",
	Long: `Thumbnail renders the first page of each given PDF scaled so its
longer edge matches the configured pixel size. Output files get a -thumb
suffix next to regular renders.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runThumbnail,
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := render.Options{}
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.DPI, _ = cmd.Flags().GetInt("dpi")
	opts.Gray, _ = cmd.Flags().GetBool("gray")
	if opts.DPI == 0 {
		opts.DPI = viper.GetInt("render.dpi")
	}
	return renderMany(cmd, args, opts)
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetInt("size")
	if size == 0 {
		size = viper.GetInt("render.thumbnail_size")
	}
	if size == 0 {
		size = 256
	}
	return renderMany(cmd, args, render.Options{Page: 1, ScaleTo: size})
}

func renderMany(cmd *cobra.Command, pdfPaths []string, opts render.Options) error {
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = viper.GetString("render.output_dir")
	}
	if outDir == "" {
		outDir = "images"
	}

	r, err := render.NewPopplerRenderer(newToolchain())
	if err != nil {
		return err
	}

	result, err := render.RenderBatch(cmd.Context(), r, pdfPaths, outDir, opts, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to render", result.Failed)
	}
	return nil
}

func init() {
	renderCmd.Flags().Int("page", 1, "page to render (1-based)")
	renderCmd.Flags().Int("dpi", 0, "rasterization resolution (default 150)")
	renderCmd.Flags().Bool("gray", false, "render grayscale")
	renderCmd.Flags().String("out", "", "output directory (default images/)")

	thumbnailCmd.Flags().Int("size", 0, "longer-edge pixel size (default 256)")
	thumbnailCmd.Flags().String("out", "", "output directory (default images/)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(thumbnailCmd)
}
