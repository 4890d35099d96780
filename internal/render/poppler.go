// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/pdfworks/internal/toolchain"
)

// PopplerRenderer rasterizes PDF pages by running pdftoppm. It depends on
// a toolchain.Toolchain injected at construction time.
type PopplerRenderer struct {
	tool *toolchain.Tool
}

// NewPopplerRenderer resolves pdftoppm through the toolchain. It fails
// before any rendering I/O when the binary is missing.
func NewPopplerRenderer(tc *toolchain.Toolchain) (*PopplerRenderer, error) {
	tool, err := tc.Find(toolchain.BinPdftoppm)
	if err != nil {
		return nil, err
	}
	return &PopplerRenderer{tool: tool}, nil
}

// RenderPage rasterizes one page of the PDF at pdfPath and returns the PNG
// bytes read from the tool's standard output. The output stream is read in
// binary mode; PNG data must never pass through newline normalization.
func (p *PopplerRenderer) RenderPage(ctx context.Context, pdfPath string, opts Options) ([]byte, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}

	data, err := p.tool.Output(ctx, renderArgs(pdfPath, opts), nil)
	if err != nil {
		return nil, fmt.Errorf("rasterizing %s: %w", pdfPath, err)
	}

	if err := validatePNG(data, pdfPath); err != nil {
		return nil, err
	}
	return data, nil
}
