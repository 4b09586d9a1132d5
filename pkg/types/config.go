package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-meta/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AuthorityConfig holds settings for the DOI authority lookup stage.
type AuthorityConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether DOI lookups are attempted at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MailTo is the contact address sent to the Crossref polite pool.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ExtractConfig holds settings for the local extraction stage.
type ExtractConfig struct {
	// MaxPDFPages bounds how many pages of a PDF are converted to text
	// before parsing (default 8; the front matter is always early).
	MaxPDFPages int `json:"max_pdf_pages" yaml:"max_pdf_pages"`
}

// StoreConfig holds settings for the metadata store.
type StoreConfig struct {
	// IndexDir is the directory holding the SQLite database (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extract   ExtractConfig   `json:"extract" yaml:"extract"`
	Authority AuthorityConfig `json:"authority" yaml:"authority"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
