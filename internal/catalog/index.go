// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiddy/pdfworks/internal/fsutil"
	"github.com/pdiddy/pdfworks/internal/scan"
	"github.com/pdiddy/pdfworks/pkg/types"
)

// Extractor reads metadata for one PDF. meta.Reader is the production
// implementation.
type Extractor interface {
	Extract(ctx context.Context, pdfPath string) (types.Document, error)
}

// IndexSummary holds counts from a catalog indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index ingests scanned PDF entries into the catalog. A file whose size
// and modification time match the stored row is skipped; otherwise its
// metadata is re-extracted and the row inserted or updated. Per-file
// status lines go to w. A failed file does not stop the run.
func (s *Store) Index(ctx context.Context, entries []scan.FileEntry, ex Extractor, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		size, modTime, err := fileIdentity(entry)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Path, err)
			summary.Failed++
			continue
		}

		var storedSize int64
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT size, mod_time FROM documents WHERE path = ?`, entry.Path,
		).Scan(&storedSize, &storedModTime)

		if err == nil && storedSize == size && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", entry.Path)
			summary.Skipped++
			continue
		}
		if err != nil && err != sql.ErrNoRows {
			return summary, fmt.Errorf("checking %s: %w", entry.Path, err)
		}
		isUpdate := err == nil

		doc, err := ex.Extract(ctx, entry.Path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Path, err)
			summary.Failed++
			continue
		}

		digest, err := fsutil.HashFile(entry.Path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Path, err)
			summary.Failed++
			continue
		}

		if err := s.upsertDocument(ctx, doc, size, modTime, digest); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", entry.Path)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", entry.Path)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// fileIdentity returns the (size, mod time) pair used for change
// detection, stat'ing the file when the scan did not carry info.
func fileIdentity(entry scan.FileEntry) (int64, string, error) {
	size, mod := entry.Size, entry.ModTime
	if mod.IsZero() {
		info, err := os.Stat(entry.Path)
		if err != nil {
			return 0, "", err
		}
		size, mod = info.Size(), info.ModTime()
	}
	return size, mod.UTC().Format(time.RFC3339Nano), nil
}

func (s *Store) upsertDocument(ctx context.Context, doc types.Document, size int64, modTime, digest string) error {
	creationDate := ""
	if !doc.CreationDate.IsZero() {
		creationDate = doc.CreationDate.Format(time.RFC3339)
	}

	encrypted := 0
	if doc.Encrypted {
		encrypted = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents
			(path, size, mod_time, title, author, producer, creator, pages,
			 page_width, page_height, page_size_name, pdf_version,
			 creation_date, encrypted, sha256, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			size=excluded.size, mod_time=excluded.mod_time,
			title=excluded.title, author=excluded.author,
			producer=excluded.producer, creator=excluded.creator,
			pages=excluded.pages, page_width=excluded.page_width,
			page_height=excluded.page_height,
			page_size_name=excluded.page_size_name,
			pdf_version=excluded.pdf_version,
			creation_date=excluded.creation_date,
			encrypted=excluded.encrypted,
			sha256=excluded.sha256, indexed_at=excluded.indexed_at`,
		doc.Path, size, modTime, doc.Title, doc.Author, doc.Producer,
		doc.Creator, doc.Pages, doc.PageSize.WidthPts, doc.PageSize.HeightPts,
		doc.PageSize.Name, doc.PDFVersion, creationDate, encrypted, digest,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}
