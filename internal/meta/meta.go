// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta reads PDF document properties and text through the external
// metadata tools. See docs/ARCHITECTURE § Metadata.
package meta

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pdfworks/internal/toolchain"
	"github.com/pdiddy/pdfworks/pkg/types"
)

// runner is the slice of toolchain.Tool this package needs; tests
// substitute fakes.
type runner interface {
	Output(ctx context.Context, args []string, stdin io.Reader) ([]byte, error)
}

// Reader extracts metadata and text from PDFs via pdfinfo and pdftotext.
type Reader struct {
	tc   *toolchain.Toolchain
	info runner
	text runner
}

// NewReader resolves pdfinfo through the toolchain. pdftotext is resolved
// lazily since only the text preview needs it.
func NewReader(tc *toolchain.Toolchain) (*Reader, error) {
	info, err := tc.Find(toolchain.BinPdfinfo)
	if err != nil {
		return nil, err
	}
	return &Reader{tc: tc, info: info}, nil
}

// textTool resolves pdftotext on first use.
func (r *Reader) textTool() (runner, error) {
	if r.text != nil {
		return r.text, nil
	}
	t, err := r.tc.Find(toolchain.BinPdftotext)
	if err != nil {
		return nil, err
	}
	r.text = t
	return t, nil
}

// Lines runs pdfinfo on the PDF and returns its output as normalized text
// lines. For a valid PDF the result is non-empty and ordered as the tool
// printed it.
func (r *Reader) Lines(ctx context.Context, pdfPath string) ([]string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}

	out, err := r.info.Output(ctx, []string{pdfPath}, nil)
	if err != nil {
		return nil, fmt.Errorf("reading metadata of %s: %w", pdfPath, err)
	}

	lines := toolchain.SplitLines(out)
	if len(lines) == 0 {
		return nil, fmt.Errorf("no metadata in %s: not a readable PDF", pdfPath)
	}
	return lines, nil
}

// Extract runs pdfinfo and parses its key/value output into a Document.
func (r *Reader) Extract(ctx context.Context, pdfPath string) (types.Document, error) {
	lines, err := r.Lines(ctx, pdfPath)
	if err != nil {
		return types.Document{}, err
	}
	doc := parseDocument(lines)
	doc.Path = pdfPath
	return doc, nil
}

// ExtractText returns the first-page text of the PDF via pdftotext,
// trimmed to maxLines lines. maxLines <= 0 means no limit.
func (r *Reader) ExtractText(ctx context.Context, pdfPath string, maxLines int) ([]string, error) {
	text, err := r.textTool()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}

	// "-" sends the text to stdout.
	args := []string{"-f", "1", "-l", "1", "-layout", pdfPath, "-"}
	out, err := text.Output(ctx, args, nil)
	if err != nil {
		return nil, fmt.Errorf("extracting text of %s: %w", pdfPath, err)
	}

	lines := toolchain.SplitLines(out)
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines, nil
}

// parseDocument maps pdfinfo's "Key: value" lines onto a Document. Unknown
// keys are ignored; values the tool omits stay zero.
func parseDocument(lines []string) types.Document {
	var doc types.Document
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Title":
			doc.Title = value
		case "Author":
			doc.Author = value
		case "Creator":
			doc.Creator = value
		case "Producer":
			doc.Producer = value
		case "CreationDate":
			doc.CreationDate = parseDate(value)
		case "ModDate":
			doc.ModDate = parseDate(value)
		case "Pages":
			doc.Pages, _ = strconv.Atoi(value)
		case "Encrypted":
			doc.Encrypted = strings.HasPrefix(value, "yes")
		case "Page size":
			doc.PageSize = parsePageSize(value)
		case "File size":
			doc.FileSize = parseFileSize(value)
		case "PDF version":
			doc.PDFVersion = value
		}
	}
	return doc
}

// dateLayouts are the timestamp shapes pdfinfo emits, most common first.
var dateLayouts = []string{
	"Mon Jan _2 15:04:05 2006 MST",
	"Mon Jan _2 15:04:05 2006",
	time.RFC3339,
}

// parseDate parses a pdfinfo timestamp. Unparseable values yield the zero
// time rather than an error; callers treat missing and unreadable dates
// the same way.
func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parsePageSize parses pdfinfo's page size line, e.g.
// "595.276 x 841.89 pts (A4)" or "612 x 792 pts (letter)".
func parsePageSize(value string) types.PageSize {
	var ps types.PageSize

	fields := strings.Fields(value)
	if len(fields) < 3 || fields[1] != "x" {
		return ps
	}
	w, errW := strconv.ParseFloat(fields[0], 64)
	h, errH := strconv.ParseFloat(fields[2], 64)
	if errW != nil || errH != nil {
		return ps
	}
	ps.WidthPts = w
	ps.HeightPts = h

	for _, f := range fields[3:] {
		if strings.HasPrefix(f, "(") && strings.HasSuffix(f, ")") {
			ps.Name = canonicalPaperName(strings.Trim(f, "()"))
		}
	}
	if ps.Name == "" {
		ps.Name = paperSizeName(w, h)
	}
	return ps
}

// parseFileSize parses "123456 bytes".
func parseFileSize(value string) int64 {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0
	}
	n, _ := strconv.ParseInt(fields[0], 10, 64)
	return n
}

// paperSizes maps standard names to portrait dimensions in points.
var paperSizes = []struct {
	name string
	w, h float64
}{
	{"A3", 842, 1191},
	{"A4", 595, 842},
	{"A5", 420, 595},
	{"Letter", 612, 792},
	{"Legal", 612, 1008},
	{"Tabloid", 792, 1224},
}

const paperSizeTolerance = 2.0 // points

// paperSizeName returns the standard paper name matching the dimensions in
// either orientation, or empty when none matches within tolerance.
func paperSizeName(w, h float64) string {
	near := func(a, b float64) bool {
		d := a - b
		return d < paperSizeTolerance && d > -paperSizeTolerance
	}
	for _, p := range paperSizes {
		if (near(w, p.w) && near(h, p.h)) || (near(w, p.h) && near(h, p.w)) {
			return p.name
		}
	}
	return ""
}

// canonicalPaperName maps pdfinfo's lowercase names ("letter") onto the
// capitalized forms this tool reports.
func canonicalPaperName(name string) string {
	for _, p := range paperSizes {
		if strings.EqualFold(name, p.name) {
			return p.name
		}
	}
	return name
}
