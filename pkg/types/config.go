package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pathfinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BackendConfig holds settings for the remote search backend.
type BackendConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the backend base URL; the client posts to URL + "/api/search".
	URL string `json:"url" yaml:"url"`

	// Token is an optional bearer token sent in the Authorization header.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// MaxRetries bounds the retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CatalogConfig controls the links from a course card to the external
// class roster.
type CatalogConfig struct {
	// Term is the roster term code, e.g. "FA21".
	Term string `json:"term" yaml:"term"`

	// BaseURL is the roster browse root, e.g.
	// "https://classes.cornell.edu/browse/roster".
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Addr is the listen address (e.g. "localhost:8080").
	Addr string `json:"addr" yaml:"addr"`

	// Placeholder is the hint text shown in the empty search box.
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// HistoryConfig holds settings for the local search log.
type HistoryConfig struct {
	// Enabled turns recording of submitted queries on or off.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir holds history.db and the export files.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all client settings.
type Config struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Server  ServerConfig  `json:"serve" yaml:"serve"`
	History HistoryConfig `json:"history" yaml:"history"`
}
