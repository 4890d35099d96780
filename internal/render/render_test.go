// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pdfworks/internal/toolchain"
	"github.com/pdiddy/pdfworks/pkg/types"
)

// fakeRenderer implements Renderer for testing. It returns canned PNG bytes
// or an error, depending on configuration.
type fakeRenderer struct {
	output []byte
	err    error

	gotOpts Options
}

func (f *fakeRenderer) RenderPage(_ context.Context, pdfPath string, opts Options) ([]byte, error) {
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

// pngBytes returns a minimal byte sequence with a valid PNG signature.
func pngBytes() []byte {
	return append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("body")...)
}

func setupPDF(t *testing.T) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	pdfPath = filepath.Join(tmpDir, "invoice-2024.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath, tmpDir
}

func TestRenderFile(t *testing.T) {
	tests := []struct {
		name       string
		renderer   *fakeRenderer
		opts       Options
		preCreate  string // output file to create before running
		wantStatus Status
		wantLog    string
	}{
		{
			name:       "successful render",
			renderer:   &fakeRenderer{output: pngBytes()},
			wantStatus: StatusRendered,
			wantLog:    "rendered:",
		},
		{
			name:       "skip existing output",
			renderer:   &fakeRenderer{output: pngBytes()},
			preCreate:  "invoice-2024.png",
			wantStatus: StatusSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "render failure",
			renderer:   &fakeRenderer{err: errors.New("pdftoppm failed: exit status 1")},
			wantStatus: StatusFailed,
			wantLog:    "failed:",
		},
		{
			name:       "thumbnail output gets suffix",
			renderer:   &fakeRenderer{output: pngBytes()},
			opts:       Options{ScaleTo: 256},
			wantStatus: StatusRendered,
			wantLog:    "invoice-2024-thumb.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, tmpDir := setupPDF(t)
			outDir := filepath.Join(tmpDir, "images")

			if tt.preCreate != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(outDir, tt.preCreate), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := RenderFile(context.Background(), tt.renderer, pdfPath, outDir, tt.opts, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestRenderFile_WritesOutput(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	outDir := filepath.Join(tmpDir, "images")
	r := &fakeRenderer{output: pngBytes()}

	var log bytes.Buffer
	if got := RenderFile(context.Background(), r, pdfPath, outDir, Options{}, &log); got != StatusRendered {
		t.Fatalf("status = %q, want rendered", got)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "invoice-2024.png"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(data, pngBytes()) {
		t.Error("output file should hold the rendered PNG bytes")
	}
}

func TestRenderBatch(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "images")

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Pre-create output for "b" to trigger skip.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b.png"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &selectiveRenderer{
		outputs: map[string][]byte{
			filepath.Join(tmpDir, "a.pdf"): pngBytes(),
			filepath.Join(tmpDir, "b.pdf"): pngBytes(),
		},
		errors: map[string]error{
			filepath.Join(tmpDir, "c.pdf"): errors.New("bad pdf"),
		},
	}

	paths := []string{
		filepath.Join(tmpDir, "a.pdf"),
		filepath.Join(tmpDir, "b.pdf"),
		filepath.Join(tmpDir, "c.pdf"),
	}

	var log bytes.Buffer
	result, err := RenderBatch(context.Background(), r, paths, outDir, Options{}, &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rendered != 1 {
		t.Errorf("rendered = %d, want 1", result.Rendered)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}
}

func TestRenderBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	_, err := RenderBatch(ctx, &fakeRenderer{output: pngBytes()}, []string{"a.pdf"}, t.TempDir(), Options{}, &log)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	r := &fakeRenderer{output: pngBytes()}
	data, err := Thumbnail(context.Background(), r, "doc.pdf", 256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("thumbnail should return PNG bytes")
	}
	if r.gotOpts.ScaleTo != 256 {
		t.Errorf("ScaleTo = %d, want 256", r.gotOpts.ScaleTo)
	}
	if r.gotOpts.Page != 1 {
		t.Errorf("Page = %d, want 1", r.gotOpts.Page)
	}
}

func TestValidatePNG(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "valid signature", data: pngBytes()},
		{name: "empty output", data: nil, wantErr: true},
		{name: "error text instead of image", data: []byte("Syntax Error: couldn't read xref table"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePNG(tt.data, "doc.pdf")
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPDF) {
					t.Errorf("expected ErrMalformedPDF, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRenderArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "defaults",
			opts: Options{},
			want: []string{"-png", "-singlefile", "-f", "1", "-l", "1", "-r", "150", "doc.pdf"},
		},
		{
			name: "explicit page and dpi",
			opts: Options{Page: 3, DPI: 300},
			want: []string{"-png", "-singlefile", "-f", "3", "-l", "3", "-r", "300", "doc.pdf"},
		},
		{
			name: "scale-to overrides dpi",
			opts: Options{ScaleTo: 256, DPI: 300},
			want: []string{"-png", "-singlefile", "-f", "1", "-l", "1", "-scale-to", "256", "doc.pdf"},
		},
		{
			name: "grayscale",
			opts: Options{Gray: true},
			want: []string{"-png", "-singlefile", "-f", "1", "-l", "1", "-r", "150", "-gray", "doc.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderArgs("doc.pdf", tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("args = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("arg %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// selectiveRenderer returns different results per file path.
type selectiveRenderer struct {
	outputs map[string][]byte
	errors  map[string]error
}

func (s *selectiveRenderer) RenderPage(_ context.Context, pdfPath string, _ Options) ([]byte, error) {
	if err, ok := s.errors[pdfPath]; ok {
		return nil, err
	}
	if out, ok := s.outputs[pdfPath]; ok {
		return out, nil
	}
	return nil, errors.New("unexpected path: " + pdfPath)
}

func TestNewPopplerRenderer_ToolMissing(t *testing.T) {
	tc := toolchain.New(types.ToolsConfig{
		Pdftoppm: filepath.Join(t.TempDir(), "no-such-pdftoppm"),
	})
	if _, err := NewPopplerRenderer(tc); !errors.Is(err, toolchain.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}
