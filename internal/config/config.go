// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration.
//
// Values are layered with koanf: struct defaults, then an optional YAML file,
// then a whitelist of environment variables. See LoadWithKoanf.
package config

import (
	"path/filepath"
	"time"
	_ "time/tzdata" // KOBIS_TIMEZONE must resolve in minimal containers
)

// Config holds all application configuration
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	KOBIS     KOBISConfig     `koanf:"kobis"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Database  DatabaseConfig  `koanf:"database"`
	Export    ExportConfig    `koanf:"export"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig locates the MovieLens-format files.
type DatasetConfig struct {
	Dir         string `koanf:"dir"`
	MoviesFile  string `koanf:"movies_file"`
	RatingsFile string `koanf:"ratings_file"`
	UsersFile   string `koanf:"users_file"`

	// Encoding of the .dat files: latin1 or utf-8.
	Encoding string `koanf:"encoding"`

	// AgeSentinel marks user rows to drop on load.
	AgeSentinel int `koanf:"age_sentinel"`
}

// MoviesPath joins Dir and MoviesFile.
func (d DatasetConfig) MoviesPath() string { return filepath.Join(d.Dir, d.MoviesFile) }

// RatingsPath joins Dir and RatingsFile.
func (d DatasetConfig) RatingsPath() string { return filepath.Join(d.Dir, d.RatingsFile) }

// UsersPath joins Dir and UsersFile.
func (d DatasetConfig) UsersPath() string { return filepath.Join(d.Dir, d.UsersFile) }

// KOBISConfig configures the Korean Film Council open API client.
type KOBISConfig struct {
	URL      string        `koanf:"url"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
	Timezone string        `koanf:"timezone"` // IANA name used to compute "yesterday"

	// DetailRateLimit paces movie-detail calls, in requests per second. 0 disables pacing.
	DetailRateLimit float64 `koanf:"detail_rate_limit"`

	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
}

// RecommendConfig bounds the accepted viewer age and picks the genre scorer.
type RecommendConfig struct {
	MinAge int    `koanf:"min_age"`
	MaxAge int    `koanf:"max_age"`
	Scorer string `koanf:"scorer"` // memory or duckdb

	// ScoreCacheTTL keeps each bucket's genre scores in memory. 0, the
	// default, recomputes them on every request.
	ScoreCacheTTL time.Duration `koanf:"score_cache_ttl"`
}

// CacheConfig configures the optional on-disk movie-detail cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Path    string        `koanf:"path"`
	TTL     time.Duration `koanf:"ttl"`
}

// DatabaseConfig configures the DuckDB scorer.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default
}

// ExportConfig controls writing the recommendation table to CSV.
type ExportConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Location resolves KOBIS.Timezone. An empty value or "Local" yields time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.KOBIS.Timezone == "" || c.KOBIS.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.KOBIS.Timezone)
}

// Load is shorthand for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
