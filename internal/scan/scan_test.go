// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pdiddy/pdfworks/pkg/types"
)

// setupTree creates a directory tree with PDFs (mixed-case extensions),
// non-PDF files, and a nested subdirectory. Returns the root and the
// relative paths of the PDFs that should be found.
func setupTree(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"report.pdf":             "%PDF-1.4 a",
		"SCAN.PDF":               "%PDF-1.4 b",
		"notes.txt":              "not a pdf",
		"archive/old.pdf":        "%PDF-1.3 c",
		"archive/deep/2019.Pdf":  "%PDF-1.3 d",
		"archive/deep/image.png": "png bytes",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"SCAN.PDF",
		"archive/deep/2019.Pdf",
		"archive/old.pdf",
		"report.pdf",
	}
	return root, want
}

func relPaths(t *testing.T, root string, entries []FileEntry) []string {
	t.Helper()
	rels := make([]string, len(entries))
	for i, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		if err != nil {
			t.Fatal(err)
		}
		rels[i] = filepath.ToSlash(rel)
	}
	return rels
}

func TestWalker_Scan(t *testing.T) {
	root, want := setupTree(t)
	w := &Walker{}

	entries, err := w.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := relPaths(t, root, entries)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q (results must be path-sorted)", i, got[i], want[i])
		}
	}

	// Without info, size and mod time stay zero.
	for _, e := range entries {
		if e.Size != 0 || !e.ModTime.IsZero() {
			t.Errorf("entry %s should have no file info", e.Path)
		}
	}
}

func TestWalker_Scan_WithInfo(t *testing.T) {
	root, _ := setupTree(t)
	w := &Walker{WithInfo: true}

	entries, err := w.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if e.Size == 0 {
			t.Errorf("entry %s should have a size", e.Path)
		}
		if e.ModTime.IsZero() {
			t.Errorf("entry %s should have a mod time", e.Path)
		}
	}
}

func TestWalker_Scan_Cancelled(t *testing.T) {
	root, _ := setupTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (&Walker{}).Scan(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWalker_Scan_MissingRoot(t *testing.T) {
	if _, err := (&Walker{}).Scan(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestShellScanner_ParsesListing(t *testing.T) {
	root, _ := setupTree(t)

	// Canned listing with CRLF endings, unsorted, with a stray blank line
	// and a non-PDF path that must be filtered.
	listing := strings.Join([]string{
		filepath.Join(root, "report.pdf"),
		filepath.Join(root, "archive", "old.pdf"),
		"",
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "SCAN.PDF"),
	}, "\r\n") + "\r\n"

	s := &shellScanner{
		goos: "linux",
		run: func(_ context.Context, name string, args []string) ([]byte, error) {
			if name != "find" {
				t.Errorf("command = %q, want find", name)
			}
			return []byte(listing), nil
		},
	}

	entries, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := relPaths(t, root, entries)
	want := []string{"SCAN.PDF", "archive/old.pdf", "report.pdf"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestShellScanner_RunFailure(t *testing.T) {
	root, _ := setupTree(t)
	s := &shellScanner{
		goos: "linux",
		run: func(_ context.Context, _ string, _ []string) ([]byte, error) {
			return nil, errors.New("find: permission denied")
		},
	}
	if _, err := s.Scan(context.Background(), root); err == nil {
		t.Error("expected error when the listing command fails")
	}
}

func TestListCommand(t *testing.T) {
	t.Run("unix find has structured args", func(t *testing.T) {
		s := &shellScanner{goos: "linux"}
		name, args := s.listCommand("/data/my docs")
		if name != "find" {
			t.Errorf("name = %q", name)
		}
		// The root travels as one argv element; spaces need no quoting.
		if args[0] != "/data/my docs" {
			t.Errorf("root arg = %q", args[0])
		}
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "-iname *.pdf") {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("windows quotes the root", func(t *testing.T) {
		s := &shellScanner{goos: "windows"}
		name, args := s.listCommand(`C:\Users\o'brien\docs`)
		if name != "powershell" {
			t.Errorf("name = %q", name)
		}
		pipeline := args[len(args)-1]
		if !strings.Contains(pipeline, `'C:\Users\o''brien\docs'`) {
			t.Errorf("pipeline should single-quote and double embedded quotes: %q", pipeline)
		}
		if !strings.Contains(pipeline, "Get-ChildItem") {
			t.Errorf("pipeline = %q", pipeline)
		}
	})
}

// TestStrategyEquivalence runs the real platform listing command against
// the native walk; both must produce the same path set.
func TestStrategyEquivalence(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fixture tree is built for the unix find invocation")
	}
	root, want := setupTree(t)

	walker := &Walker{}
	shell, err := newShellScanner(types.ScanConfig{Strategy: types.StrategyShell})
	if err != nil {
		t.Fatal(err)
	}

	walked, err := walker.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	listed, err := shell.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}

	gotWalk := relPaths(t, root, walked)
	gotShell := relPaths(t, root, listed)
	if len(gotWalk) != len(want) || len(gotShell) != len(want) {
		t.Fatalf("walk %v, shell %v, want %v", gotWalk, gotShell, want)
	}
	for i := range want {
		if gotWalk[i] != gotShell[i] {
			t.Errorf("entry %d differs: walk %q, shell %q", i, gotWalk[i], gotShell[i])
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(types.ScanConfig{}); err != nil {
		t.Errorf("default strategy: %v", err)
	}
	if _, err := New(types.ScanConfig{Strategy: types.StrategyShell}); err != nil {
		t.Errorf("shell strategy: %v", err)
	}
	if _, err := New(types.ScanConfig{Strategy: "teleport"}); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
