package types

// ToolsConfig holds explicit paths for the external poppler binaries.
// Empty fields mean "resolve from PATH".
type ToolsConfig struct {
	// Pdftoppm is the path to the pdftoppm binary.
	Pdftoppm string `json:"pdftoppm,omitempty" yaml:"pdftoppm,omitempty"`

	// Pdfinfo is the path to the pdfinfo binary.
	Pdfinfo string `json:"pdfinfo,omitempty" yaml:"pdfinfo,omitempty"`

	// Pdftotext is the path to the pdftotext binary.
	Pdftotext string `json:"pdftotext,omitempty" yaml:"pdftotext,omitempty"`
}

// RenderConfig holds settings for PNG rasterization.
type RenderConfig struct {
	// DPI is the rasterization resolution for full-page renders (default 150).
	DPI int `json:"dpi" yaml:"dpi"`

	// ThumbnailSize is the pixel size of the longer edge for thumbnails
	// (default 256).
	ThumbnailSize int `json:"thumbnail_size" yaml:"thumbnail_size"`

	// OutputDir is the directory for rendered images (default "images").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Gray renders grayscale output when true.
	Gray bool `json:"gray" yaml:"gray"`
}

// ScanStrategy selects how directories are enumerated.
type ScanStrategy string

const (
	// StrategyWalk uses native directory-tree iteration.
	StrategyWalk ScanStrategy = "walk"

	// StrategyShell shells out to the platform file-listing command.
	// Kept because native walks have failed on very deep trees.
	StrategyShell ScanStrategy = "shell"
)

// ScanConfig holds settings for directory enumeration.
type ScanConfig struct {
	// Strategy selects the enumerator: walk (default) or shell.
	Strategy ScanStrategy `json:"strategy" yaml:"strategy"`

	// WithInfo includes file size and modification time in results.
	WithInfo bool `json:"with_info" yaml:"with_info"`
}

// CatalogConfig holds settings for the document catalog.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all tool configuration.
type Config struct {
	Tools   ToolsConfig   `json:"tools" yaml:"tools"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
