// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pdiddy/pdfworks/internal/toolchain"
	"github.com/pdiddy/pdfworks/pkg/types"
)

// shellScanner enumerates PDFs by running the platform file-listing
// command and parsing its line-oriented output.
type shellScanner struct {
	withInfo bool
	goos     string
	run      func(ctx context.Context, name string, args []string) ([]byte, error)
}

func newShellScanner(cfg types.ScanConfig) (*shellScanner, error) {
	return &shellScanner{
		withInfo: cfg.WithInfo,
		goos:     runtime.GOOS,
		run:      runCommand,
	}, nil
}

// runCommand executes name with a structured argument list and returns its
// standard output. No shell interprets the arguments on unix; on Windows
// the PowerShell command string is built by listCommand with quoting.
func runCommand(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

// listCommand builds the platform listing invocation for root.
func (s *shellScanner) listCommand(root string) (string, []string) {
	if s.goos == "windows" {
		// Single-quoted PowerShell literal; embedded quotes are doubled.
		quoted := "'" + strings.ReplaceAll(root, "'", "''") + "'"
		pipeline := fmt.Sprintf(
			"Get-ChildItem -LiteralPath %s -Recurse -File -Filter *.pdf | ForEach-Object { $_.FullName }",
			quoted,
		)
		return "powershell", []string{"-NoProfile", "-Command", pipeline}
	}
	// The pattern is a find argument, not a shell glob; nothing expands it.
	return "find", []string{root, "-type", "f", "-iname", "*.pdf"}
}

// Scan lists PDFs under root via the platform command. Output lines are
// newline-normalized before parsing, so CRLF from a Windows pipe is
// harmless. File info, when requested, comes from stat'ing each path
// rather than parsing localized listing columns.
func (s *shellScanner) Scan(ctx context.Context, root string) ([]FileEntry, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	name, args := s.listCommand(root)
	out, err := s.run(ctx, name, args)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	var entries []FileEntry
	for _, line := range toolchain.SplitLines(out) {
		path := strings.TrimSpace(line)
		if path == "" || !isPDF(path) {
			continue
		}

		entry := FileEntry{Path: path}
		if s.withInfo {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries, nil
}
