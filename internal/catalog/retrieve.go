// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pdfworks/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, author,
	// producer, and path.
	Query string

	// Author filters by exact author.
	Author string

	// EncryptedOnly restricts results to encrypted documents.
	EncryptedOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Author == "" && !q.EncryptedOnly
}

// Result is a cataloged document together with its index bookkeeping.
type Result struct {
	types.Document `yaml:",inline"`
	SHA256         string    `json:"sha256" yaml:"sha256"`
	FileModTime    time.Time `json:"file_mod_time" yaml:"file_mod_time"`
	IndexedAt      time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// Retrieve queries the catalog with optional full-text search and
// structured filters. Full-text queries rank by relevance; structured-only
// queries sort by path.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	const columns = `d.path, d.size, d.mod_time, d.title, d.author, d.producer,
		d.creator, d.pages, d.page_width, d.page_height, d.page_size_name,
		d.pdf_version, d.creation_date, d.encrypted, d.sha256, d.indexed_at`

	if useFTS {
		qb.WriteString(`SELECT ` + columns + `
			FROM documents_fts
			JOIN documents d ON d.rowid = documents_fts.rowid
			WHERE documents_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(`SELECT ` + columns + `
			FROM documents d
			WHERE 1=1`)
	}

	if opts.Author != "" {
		qb.WriteString(` AND d.author = ?`)
		args = append(args, opts.Author)
	}
	if opts.EncryptedOnly {
		qb.WriteString(` AND d.encrypted = 1`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY documents_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.path`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func scanResult(rows *sql.Rows) (Result, error) {
	var (
		r            Result
		modTime      sql.NullString
		title        sql.NullString
		author       sql.NullString
		producer     sql.NullString
		creator      sql.NullString
		sizeName     sql.NullString
		pdfVersion   sql.NullString
		creationDate sql.NullString
		digest       sql.NullString
		indexedAt    sql.NullString
		encrypted    int
	)

	if err := rows.Scan(
		&r.Path, &r.FileSize, &modTime, &title, &author, &producer,
		&creator, &r.Pages, &r.PageSize.WidthPts, &r.PageSize.HeightPts,
		&sizeName, &pdfVersion, &creationDate, &encrypted, &digest, &indexedAt,
	); err != nil {
		return Result{}, fmt.Errorf("scanning row: %w", err)
	}

	r.Title = title.String
	r.Author = author.String
	r.Producer = producer.String
	r.Creator = creator.String
	r.PageSize.Name = sizeName.String
	r.PDFVersion = pdfVersion.String
	r.Encrypted = encrypted != 0
	r.SHA256 = digest.String

	if creationDate.Valid && creationDate.String != "" {
		if t, err := time.Parse(time.RFC3339, creationDate.String); err == nil {
			r.CreationDate = t
		}
	}
	if modTime.Valid && modTime.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, modTime.String); err == nil {
			r.FileModTime = t
		}
	}
	if indexedAt.Valid && indexedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, indexedAt.String); err == nil {
			r.IndexedAt = t
		}
	}

	return r, nil
}
