// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdfworks tool.
package types

import "time"

// Orientation describes how a document page is rotated relative to its
// longer edge.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationSquare    Orientation = "square"
)

// PageSize holds a page's media box dimensions in PostScript points
// (1/72 inch), together with a best-effort standard paper name.
type PageSize struct {
	// WidthPts and HeightPts are the media box dimensions in points.
	WidthPts  float64 `json:"width_pts" yaml:"width_pts"`
	HeightPts float64 `json:"height_pts" yaml:"height_pts"`

	// Name is a standard paper size ("A4", "Letter", ...) when the
	// dimensions match one within tolerance, otherwise empty.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Orientation derives the page orientation from the dimensions.
func (p PageSize) Orientation() Orientation {
	switch {
	case p.WidthPts > p.HeightPts:
		return OrientationLandscape
	case p.WidthPts < p.HeightPts:
		return OrientationPortrait
	default:
		return OrientationSquare
	}
}

// Document holds the metadata read from a PDF file via the external
// metadata reader.
type Document struct {
	// Path is the local filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Title is the document title as recorded in the PDF info dictionary.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author is the document author.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Creator is the application that authored the original document.
	Creator string `json:"creator,omitempty" yaml:"creator,omitempty"`

	// Producer is the software that produced the PDF itself.
	Producer string `json:"producer,omitempty" yaml:"producer,omitempty"`

	// CreationDate and ModDate are the document timestamps, zero when absent.
	CreationDate time.Time `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	ModDate      time.Time `json:"mod_date,omitempty" yaml:"mod_date,omitempty"`

	// Pages is the page count.
	Pages int `json:"pages" yaml:"pages"`

	// PageSize describes the first page's media box.
	PageSize PageSize `json:"page_size" yaml:"page_size"`

	// PDFVersion is the file format version string (e.g. "1.7").
	PDFVersion string `json:"pdf_version,omitempty" yaml:"pdf_version,omitempty"`

	// Encrypted reports whether the document carries encryption.
	Encrypted bool `json:"encrypted" yaml:"encrypted"`

	// FileSize is the size of the PDF file in bytes.
	FileSize int64 `json:"file_size" yaml:"file_size"`
}
