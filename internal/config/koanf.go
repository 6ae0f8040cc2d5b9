// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultKOBISURL is the public KOBIS open API host.
const DefaultKOBISURL = "http://kobis.or.kr"

func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:         "data",
			MoviesFile:  "movies.dat",
			RatingsFile: "ratings.dat",
			UsersFile:   "users.dat",
			Encoding:    "latin1",
			AgeSentinel: 1,
		},
		KOBIS: KOBISConfig{
			URL:                 DefaultKOBISURL,
			APIKey:              "",
			Timeout:             30 * time.Second,
			Timezone:            "Local",
			DetailRateLimit:     0,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      2 * time.Minute,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  10,
		},
		Recommend: RecommendConfig{
			MinAge: 15,
			MaxAge: 70,
			Scorer: "memory",
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    "/data/kobis-cache",
			TTL:     24 * time.Hour,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Export: ExportConfig{
			Enabled: false,
			Path:    "recommendations.csv",
		},
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers, later layers winning:
//  1. built-in defaults
//  2. the first config file found (CONFIG_PATH, then DefaultConfigPaths)
//  3. whitelisted environment variables
func LoadWithKoanf() (*Config, error) {
	return LoadFromPath(findConfigFile())
}

// LoadFromPath is LoadWithKoanf with an explicit config file. An empty path
// skips the file layer.
func LoadFromPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"movielens_dir":          "dataset.dir",
	"movielens_movies":       "dataset.movies_file",
	"movielens_ratings":      "dataset.ratings_file",
	"movielens_users":        "dataset.users_file",
	"movielens_encoding":     "dataset.encoding",
	"movielens_age_sentinel": "dataset.age_sentinel",

	"kobis_url":                   "kobis.url",
	"kobis_api_key":               "kobis.api_key",
	"kobis_timeout":               "kobis.timeout",
	"kobis_timezone":              "kobis.timezone",
	"kobis_detail_rate_limit":     "kobis.detail_rate_limit",
	"kobis_breaker_max_requests":  "kobis.breaker_max_requests",
	"kobis_breaker_interval":      "kobis.breaker_interval",
	"kobis_breaker_timeout":       "kobis.breaker_timeout",
	"kobis_breaker_failure_ratio": "kobis.breaker_failure_ratio",
	"kobis_breaker_min_requests":  "kobis.breaker_min_requests",

	"recommend_min_age": "recommend.min_age",
	"recommend_max_age": "recommend.max_age",
	"recommend_scorer":  "recommend.scorer",

	"recommend_score_cache_ttl": "recommend.score_cache_ttl",

	"detail_cache_enabled": "cache.enabled",
	"detail_cache_path":    "cache.path",
	"detail_cache_ttl":     "cache.ttl",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"export_enabled": "export.enabled",
	"export_path":    "export.path",

	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc turns KOBIS_API_KEY into kobis.api_key and so on.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
