// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render implements PDF-to-PNG rasterization backed by an external
// rasterizer. See docs/ARCHITECTURE § Rendering.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/pdfworks/internal/fsutil"
)

// pngSignature is the fixed 8-byte prefix of every PNG file.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrMalformedPDF reports that the rasterizer ran but produced no usable
// image, which in practice means the input was not a valid PDF.
var ErrMalformedPDF = errors.New("malformed PDF input")

// Options controls a single page render.
type Options struct {
	// Page selects the page to render, 1-based. Zero means page 1.
	Page int

	// DPI is the rasterization resolution. Zero means 150.
	DPI int

	// ScaleTo scales the longer edge to the given pixel count. When set,
	// DPI is ignored; this is the thumbnail path.
	ScaleTo int

	// Gray renders grayscale output.
	Gray bool
}

// Renderer turns one PDF page into PNG bytes. The poppler backend is the
// only production implementation; tests substitute fakes.
type Renderer interface {
	RenderPage(ctx context.Context, pdfPath string, opts Options) ([]byte, error)
}

// Status reports the outcome of rendering one file.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// BatchResult holds the outcome of a batch render run.
type BatchResult struct {
	Rendered int
	Skipped  int
	Failed   int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed to render.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Thumbnail renders page 1 scaled so its longer edge is size pixels.
func Thumbnail(ctx context.Context, r Renderer, pdfPath string, size int) ([]byte, error) {
	return r.RenderPage(ctx, pdfPath, Options{Page: 1, ScaleTo: size})
}

// RenderFile renders one PDF into outDir/<base>.png (or <base>-thumb.png
// when opts.ScaleTo is set). If the output already exists it is skipped.
// Per-file status is written to w.
func RenderFile(ctx context.Context, r Renderer, pdfPath, outDir string, opts Options, w io.Writer) Status {
	suffix := ""
	if opts.ScaleTo > 0 {
		suffix = "thumb"
	}
	outPath := filepath.Join(outDir, fsutil.OutputName(pdfPath, suffix, ".png"))
	base := fsutil.BaseName(pdfPath)

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped:  %s (already exists)\n", base)
		return StatusSkipped
	}

	data, err := r.RenderPage(ctx, pdfPath, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:   %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := fsutil.WriteFile(outPath, data); err != nil {
		fmt.Fprintf(w, "failed:   %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "rendered: %s -> %s\n", base, outPath)
	return StatusRendered
}

// RenderBatch renders a list of PDFs into outDir, printing per-file status
// to w and returning a summary. Processing is sequential; a failed file
// does not stop the batch, but a cancelled context does.
func RenderBatch(ctx context.Context, r Renderer, pdfPaths []string, outDir string, opts Options, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, p := range pdfPaths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch RenderFile(ctx, r, p, outDir, opts, w) {
		case StatusRendered:
			result.Rendered++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		result.Rendered, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// validatePNG checks that the rasterizer output is a non-empty PNG stream.
func validatePNG(data []byte, pdfPath string) error {
	if len(data) == 0 {
		return fmt.Errorf("rasterizer produced no output for %s: %w", pdfPath, ErrMalformedPDF)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return fmt.Errorf("rasterizer output for %s is not PNG: %w", pdfPath, ErrMalformedPDF)
	}
	return nil
}

// renderArgs builds the pdftoppm argument list for opts. The PDF path is
// appended as a positional argument and the output prefix is omitted so
// the image arrives on stdout.
func renderArgs(pdfPath string, opts Options) []string {
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	args := []string{
		"-png",
		"-singlefile",
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
	}

	if opts.ScaleTo > 0 {
		args = append(args, "-scale-to", strconv.Itoa(opts.ScaleTo))
	} else {
		dpi := opts.DPI
		if dpi <= 0 {
			dpi = 150
		}
		args = append(args, "-r", strconv.Itoa(dpi))
	}

	if opts.Gray {
		args = append(args, "-gray")
	}

	return append(args, pdfPath)
}
