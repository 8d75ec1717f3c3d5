package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litfetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RequestsPerSecond caps the outbound request rate. NCBI allows
	// 3 req/s without an API key and 10 req/s with one. Zero disables
	// the limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory for rendered article documents
	// (contains *.txt files and a metadata/ subdirectory).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// RequestDelay is the pause between consecutive identifiers
	// (default 500ms). Politeness throttling, not a correctness mechanism.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// APIKey is an optional NCBI E-utilities API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI E-utilities API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// IndexConfig holds settings for the article index stage.
type IndexConfig struct {
	// DBPath is the SQLite database file (default "index/litfetch.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// ArticlesDir is the directory of rendered article documents to index.
	ArticlesDir string `json:"articles_dir" yaml:"articles_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
