// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data shapes of the catalog gateway:
// configuration structs, canonical display records, and pagination.
package types

import "time"

// HTTPConfig holds shared HTTP settings for components that talk to the
// upstream catalog API.
type HTTPConfig struct {
	// Timeout is the per-attempt HTTP request timeout (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every upstream request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// UpstreamConfig holds settings for the resilient upstream client.
type UpstreamConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the catalog API, without a trailing slash
	// (e.g. "https://api.ethnos.app/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RetryBudget is the number of retries after the first attempt for
	// transient failures (default 2, so up to 3 attempts).
	RetryBudget int `json:"retry_budget" yaml:"retry_budget"`

	// RequestsPerSecond caps the upstream request rate. Zero disables
	// the limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// CacheConfig holds TTLs for the in-process read-through cache.
type CacheConfig struct {
	// TTL is the lifetime of a cached upstream payload (default 300s).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// HomepageTTL is the lifetime of the homepage composite, which is
	// cached as a single unit independent of its constituent calls
	// (default 600s).
	HomepageTTL time.Duration `json:"homepage_ttl" yaml:"homepage_ttl"`
}

// SearchConfig holds settings for the search strategy chain.
type SearchConfig struct {
	// PrimaryEngine names the full-text engine tried first for plain
	// free-text queries; the chain calls /search/{PrimaryEngine}
	// (default "sphinx").
	PrimaryEngine string `json:"primary_engine" yaml:"primary_engine"`

	// EnrichLimit is how many first-page results receive a per-item
	// detail fetch (default 10). Items past the limit pass through
	// unenriched to bound worst-case latency.
	EnrichLimit int `json:"enrich_limit" yaml:"enrich_limit"`

	// MaxLimit caps the page size forwarded to the upstream API
	// (default 100).
	MaxLimit int `json:"max_limit" yaml:"max_limit"`
}

// FallbackStats are the documented static statistics shown when a
// homepage constituent call fails entirely. A plausible fixed number is
// a product decision: the page must never show an obviously broken "0".
type FallbackStats struct {
	TotalWorks         int `json:"total_works" yaml:"total_works"`
	TotalVenues        int `json:"total_venues" yaml:"total_venues"`
	TotalAuthors       int `json:"total_authors" yaml:"total_authors"`
	TotalOrganizations int `json:"total_organizations" yaml:"total_organizations"`
}

// GatewayConfig groups all component configurations.
type GatewayConfig struct {
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Fallback FallbackStats  `json:"fallback" yaml:"fallback"`
}

// Defaults used when a config value is absent or zero.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultRetryBudget = 2
	DefaultTTL         = 300 * time.Second
	DefaultHomepageTTL = 600 * time.Second
	DefaultUserAgent   = "ethnos_app/1.0 (Academic Research Tool)"
	DefaultEngine      = "sphinx"
	DefaultEnrichLimit = 10
	DefaultMaxLimit    = 100
)

// DefaultFallbackStats mirrors the numbers the reference deployment
// shows when the upstream is unreachable.
var DefaultFallbackStats = FallbackStats{
	TotalWorks:         650000,
	TotalVenues:        4945,
	TotalAuthors:       549480,
	TotalOrganizations: 182170,
}

// ApplyDefaults fills zero values with the documented defaults.
func (c *GatewayConfig) ApplyDefaults() {
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = DefaultTimeout
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = DefaultUserAgent
	}
	if c.Upstream.RetryBudget <= 0 {
		c.Upstream.RetryBudget = DefaultRetryBudget
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultTTL
	}
	if c.Cache.HomepageTTL <= 0 {
		c.Cache.HomepageTTL = DefaultHomepageTTL
	}
	if c.Search.PrimaryEngine == "" {
		c.Search.PrimaryEngine = DefaultEngine
	}
	if c.Search.EnrichLimit <= 0 {
		c.Search.EnrichLimit = DefaultEnrichLimit
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = DefaultMaxLimit
	}
	if c.Fallback == (FallbackStats{}) {
		c.Fallback = DefaultFallbackStats
	}
}
