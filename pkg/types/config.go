// Copyright q9good, 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. The SSE
	// query endpoints reject non-browser agents, so the default mimics a
	// desktop Chrome build.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrawlConfig holds settings for the crawl stage.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive file downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// DownloadDir is the root of the source tree the crawler populates
	// (one subdirectory per company, one per filing category below that).
	DownloadDir string `json:"download_dir" yaml:"download_dir"`
}

// ExtractionBackend identifies the PDF text-extraction tool.
type ExtractionBackend string

const (
	BackendPDF       ExtractionBackend = "pdf"
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// ConvertConfig holds settings for the convert stage. Both roots are
// resolved once at invocation; nothing inside the converter consults
// globals or re-reads configuration.
type ConvertConfig struct {
	// InputRoot is the root of the source tree containing PDF files.
	InputRoot string `json:"input_root" yaml:"input_root"`

	// OutputRoot is the root of the mirrored tree that receives .txt files.
	OutputRoot string `json:"output_root" yaml:"output_root"`

	// Backend selects the extraction tool: pdf (in-process) or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// ManifestPath is the sqlite conversion manifest location. Empty
	// disables manifest recording.
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`
}

// CrawlerConfig groups all stage configurations.
type CrawlerConfig struct {
	Crawl   CrawlConfig   `json:"crawl" yaml:"crawl"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
}
