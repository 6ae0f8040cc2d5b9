// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package app assembles the recommendation engine from configuration.
// Both the HTTP server and the terminal tool start here.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/boxoffice"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Scorer names accepted in recommend.scorer.
const (
	ScorerMemory = "memory"
	ScorerDuckDB = "duckdb"
)

// Components holds everything Build opened. Close releases it.
type Components struct {
	Engine  *recommend.Engine
	Dataset *models.Dataset
	Breaker *boxoffice.BreakerClient

	// DB is set only for the duckdb scorer.
	DB *database.DB

	// Cache is set only when cache.enabled.
	Cache *boxoffice.BadgerGenreCache
}

// Build loads the dataset, prepares the configured scorer and the KOBIS
// client chain, and returns the engine on top of them. On error anything
// already opened is closed.
func Build(ctx context.Context, cfg *config.Config) (c *Components, err error) {
	c = &Components{}
	defer func() {
		if err != nil {
			if closeErr := c.Close(); closeErr != nil {
				logging.Warn().Err(closeErr).Msg("Cleanup after failed startup")
			}
			c = nil
		}
	}()

	c.Dataset, err = dataset.Load(ctx, &cfg.Dataset)
	if err != nil {
		return c, fmt.Errorf("load dataset: %w", err)
	}

	scorer, err := c.buildScorer(ctx, cfg)
	if err != nil {
		return c, err
	}
	if cfg.Recommend.ScoreCacheTTL > 0 {
		scorer = recommend.NewCachedScorer(scorer, cfg.Recommend.ScoreCacheTTL)
	}

	source, err := c.buildBoxOffice(cfg)
	if err != nil {
		return c, err
	}

	c.Engine = recommend.NewEngine(recommend.Config{
		MinAge: cfg.Recommend.MinAge,
		MaxAge: cfg.Recommend.MaxAge,
	}, scorer, source)

	logging.Info().
		Str("scorer", scorer.Name()).
		Bool("detail_cache", c.Cache != nil).
		Dur("score_cache_ttl", cfg.Recommend.ScoreCacheTTL).
		Float64("detail_rate_limit", cfg.KOBIS.DetailRateLimit).
		Msg("Recommendation engine ready")
	return c, nil
}

func (c *Components) buildScorer(ctx context.Context, cfg *config.Config) (recommend.GenreScorer, error) {
	switch cfg.Recommend.Scorer {
	case "", ScorerMemory:
		return recommend.NewMemoryScorer(c.Dataset), nil
	case ScorerDuckDB:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open duckdb: %w", err)
		}
		c.DB = db
		if err := db.LoadDataset(ctx, c.Dataset); err != nil {
			return nil, fmt.Errorf("load dataset into duckdb: %w", err)
		}
		return database.NewScorer(db), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Recommend.Scorer)
	}
}

func (c *Components) buildBoxOffice(cfg *config.Config) (*boxoffice.Fetcher, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("kobis timezone: %w", err)
	}

	c.Breaker = boxoffice.NewBreakerClient(boxoffice.NewClient(&cfg.KOBIS), &cfg.KOBIS)

	opts := []boxoffice.FetcherOption{
		boxoffice.WithLocation(loc),
		boxoffice.WithDetailRateLimit(cfg.KOBIS.DetailRateLimit),
	}
	if cfg.Cache.Enabled {
		cache, err := boxoffice.OpenBadgerGenreCache(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		c.Cache = cache
		opts = append(opts, boxoffice.WithGenreCache(cache))
	}
	return boxoffice.NewFetcher(c.Breaker, opts...), nil
}

// Close releases the cache and database. Safe on a partially built value.
func (c *Components) Close() error {
	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close genre cache: %w", err))
		}
		c.Cache = nil
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close duckdb: %w", err))
		}
		c.DB = nil
	}
	return errors.Join(errs...)
}
