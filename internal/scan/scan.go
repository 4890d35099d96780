// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates PDF files under a directory tree. Two strategies
// exist: a native directory walk (the default) and a shell-out to the
// platform file-listing command, kept because native walks have fallen over
// on pathologically deep trees. Both return the same entries for any tree
// free of permission errors and newline-bearing filenames.
// See docs/ARCHITECTURE § Scanning.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/pdfworks/pkg/types"
)

// FileEntry is one enumerated PDF file. Size and ModTime are populated
// only when the scan requested file info.
type FileEntry struct {
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size,omitempty" yaml:"size,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty" yaml:"mod_time,omitempty"`
}

// Scanner enumerates PDF files under a root directory.
type Scanner interface {
	Scan(ctx context.Context, root string) ([]FileEntry, error)
}

// New returns the scanner selected by cfg.Strategy. Walk is the default.
func New(cfg types.ScanConfig) (Scanner, error) {
	switch cfg.Strategy {
	case types.StrategyWalk, "":
		return &Walker{WithInfo: cfg.WithInfo}, nil
	case types.StrategyShell:
		return newShellScanner(cfg)
	default:
		return nil, fmt.Errorf("unknown scan strategy %q: use walk or shell", cfg.Strategy)
	}
}

// isPDF reports whether name has a .pdf extension, case-insensitively.
func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// sortEntries orders entries by path so both strategies agree on output
// order regardless of traversal order.
func sortEntries(entries []FileEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

// Walker enumerates PDFs with native directory-tree iteration.
type Walker struct {
	// WithInfo stats each file for size and modification time.
	WithInfo bool
}

// Scan walks root collecting PDF paths. Cancellation is checked between
// entries; unreadable subtrees abort the walk with the underlying error.
func (w *Walker) Scan(ctx context.Context, root string) ([]FileEntry, error) {
	var entries []FileEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("accessing %s: %w", path, err)
		}
		if d.IsDir() || !isPDF(d.Name()) {
			return nil
		}

		entry := FileEntry{Path: path}
		if w.WithInfo {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortEntries(entries)
	return entries, nil
}
