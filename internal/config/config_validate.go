// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"
)

// Youngest and oldest ages any configuration may accept. Ages outside the
// decade buckets are still refused later, this only guards against typos.
const (
	absoluteMinAge = 1
	absoluteMaxAge = 120
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 10000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validEncodings = map[string]bool{
	"latin1":     true,
	"iso-8859-1": true,
	"utf-8":      true,
	"utf8":       true,
}

var validScorers = map[string]bool{
	"memory": true,
	"duckdb": true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateKOBIS(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if c.Dataset.MoviesFile == "" || c.Dataset.RatingsFile == "" || c.Dataset.UsersFile == "" {
		return fmt.Errorf("MOVIELENS_MOVIES, MOVIELENS_RATINGS and MOVIELENS_USERS must not be empty")
	}
	if !validEncodings[strings.ToLower(c.Dataset.Encoding)] {
		return fmt.Errorf("MOVIELENS_ENCODING must be one of: latin1, utf-8")
	}
	return nil
}

func (c *Config) validateKOBIS() error {
	if c.KOBIS.URL == "" {
		return fmt.Errorf("KOBIS_URL is required")
	}
	if err := validateHTTPURL(c.KOBIS.URL, "KOBIS_URL"); err != nil {
		return fmt.Errorf("KOBIS_URL is invalid: %w", err)
	}
	if c.KOBIS.APIKey == "" {
		return fmt.Errorf("KOBIS_API_KEY is required")
	}
	if c.KOBIS.Timeout <= 0 {
		return fmt.Errorf("KOBIS_TIMEOUT must be positive")
	}
	if c.KOBIS.DetailRateLimit < 0 {
		return fmt.Errorf("KOBIS_DETAIL_RATE_LIMIT must not be negative")
	}
	if c.KOBIS.BreakerFailureRatio <= 0 || c.KOBIS.BreakerFailureRatio > 1 {
		return fmt.Errorf("KOBIS_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("KOBIS_TIMEZONE is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinAge < absoluteMinAge || r.MaxAge > absoluteMaxAge {
		return fmt.Errorf("RECOMMEND_MIN_AGE and RECOMMEND_MAX_AGE must be within %d..%d", absoluteMinAge, absoluteMaxAge)
	}
	if r.MinAge > r.MaxAge {
		return fmt.Errorf("RECOMMEND_MIN_AGE (%d) must not exceed RECOMMEND_MAX_AGE (%d)", r.MinAge, r.MaxAge)
	}
	if !validScorers[r.Scorer] {
		return fmt.Errorf("RECOMMEND_SCORER must be one of: memory, duckdb")
	}
	if r.ScoreCacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_SCORE_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("DETAIL_CACHE_PATH is required when DETAIL_CACHE_ENABLED=true")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("DETAIL_CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.Enabled && c.Export.Path == "" {
		return fmt.Errorf("EXPORT_PATH is required when EXPORT_ENABLED=true")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin in production, logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
