// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// BoxOfficeSource returns yesterday's daily box office with genres resolved.
// An aborted fetch returns an empty slice, not an error; errors are reserved
// for cancellation and similar caller-side failures.
type BoxOfficeSource interface {
	DailyBoxOffice(ctx context.Context) (entries []models.BoxOfficeEntry, targetDate string, err error)
}

// Config bounds accepted ages.
type Config struct {
	MinAge int
	MaxAge int
}

// DefaultConfig accepts ages 15 through 70.
func DefaultConfig() Config {
	return Config{MinAge: 15, MaxAge: 70}
}

// Request is one viewer's input.
type Request struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
	Age  int    `json:"age" validate:"required,min=1,max=120"`
}

// Engine runs the recommendation flow. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	cfg       Config
	scorer    GenreScorer
	boxOffice BoxOfficeSource
	logger    zerolog.Logger
}

// NewEngine wires a scorer and a box office source.
func NewEngine(cfg Config, scorer GenreScorer, boxOffice BoxOfficeSource) *Engine {
	return &Engine{
		cfg:       cfg,
		scorer:    scorer,
		boxOffice: boxOffice,
		logger:    logging.WithComponent("recommend"),
	}
}

// CheckAge applies the input bounds and bucket lookup.
func (e *Engine) CheckAge(age int) (Bucket, error) {
	if age < e.cfg.MinAge || age > e.cfg.MaxAge {
		return Bucket{}, fmt.Errorf("%w: %d is not within %d..%d", ErrAgeOutOfRange, age, e.cfg.MinAge, e.cfg.MaxAge)
	}
	b, ok := BucketFor(age)
	if !ok {
		return Bucket{}, ErrNoBucket
	}
	return b, nil
}

// GenreScores returns the bucket for age and its genre means, best first.
func (e *Engine) GenreScores(ctx context.Context, age int) (Bucket, []models.GenreScore, error) {
	b, err := e.CheckAge(age)
	if err != nil {
		return Bucket{}, nil, err
	}

	start := time.Now()
	scores, err := e.scorer.GenreScores(ctx, b)
	metrics.GenreAggregationDuration.WithLabelValues(e.scorer.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ErrEmptyBucket) {
			return b, nil, err
		}
		return b, nil, fmt.Errorf("genre aggregation for %s: %w", b, err)
	}
	return b, scores, nil
}

// BoxOffice returns yesterday's list unranked. An empty list is ErrNoBoxOffice.
func (e *Engine) BoxOffice(ctx context.Context) ([]models.BoxOfficeEntry, string, error) {
	entries, target, err := e.boxOffice.DailyBoxOffice(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, target, err
		}
		return nil, target, fmt.Errorf("%w: %v", ErrNoBoxOffice, err)
	}
	if len(entries) == 0 {
		return nil, target, ErrNoBoxOffice
	}
	return entries, target, nil
}

// Recommend runs the whole flow for req.
//
// When the box office is unavailable the returned result still carries the
// genre scores so callers can show the chart, together with ErrNoBoxOffice.
// Every other error returns a nil result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*models.RecommendationResult, error) {
	res, err := e.recommend(ctx, req)
	metrics.RecommendationsTotal.WithLabelValues(Outcome(err)).Inc()

	log := logging.Ctx(ctx).With().Str("component", "recommend").Int("age", req.Age).Logger()
	switch {
	case err == nil:
		log.Info().
			Str("bucket", res.Bucket).
			Int("genres", len(res.GenreScores)).
			Int("recommendations", len(res.Recommendations)).
			Msg("Recommendations ready")
	case IsUserFacing(err):
		log.Warn().Err(err).Msg("Recommendation refused")
	default:
		log.Error().Err(err).Msg("Recommendation failed")
	}
	return res, err
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request) (*models.RecommendationResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Age == 0 {
		return nil, ErrMissingInput
	}

	b, scores, err := e.GenreScores(ctx, req.Age)
	if err != nil {
		return nil, err
	}

	res := &models.RecommendationResult{
		Name:            name,
		Age:             req.Age,
		Bucket:          b.Label(),
		GenreScores:     scores,
		Recommendations: []models.Recommendation{},
	}

	entries, target, err := e.BoxOffice(ctx)
	res.TargetDate = target
	if err != nil {
		if errors.Is(err, ErrNoBoxOffice) {
			return res, err
		}
		return nil, err
	}

	res.Recommendations = Rank(entries, ScoreIndex(scores))
	e.logger.Debug().
		Str("target_date", target).
		Int("titles", len(entries)).
		Msg("Box office ranked")
	return res, nil
}
