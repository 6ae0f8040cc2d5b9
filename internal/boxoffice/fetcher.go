// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package boxoffice

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// TargetDateLayout is the KOBIS targetDt format.
const TargetDateLayout = "20060102"

// TargetDate returns the day before now in loc, as YYYYMMDD.
func TargetDate(now time.Time, loc *time.Location) string {
	return now.In(loc).AddDate(0, 0, -1).Format(TargetDateLayout)
}

// Fetcher assembles yesterday's box office with one genre per title.
//
// The detail calls run one after another in list order. Any failed call
// aborts the whole fetch and yields an empty list; the failure is logged and
// counted, never returned.
type Fetcher struct {
	api     API
	cache   GenreCache
	limiter *rate.Limiter
	loc     *time.Location
	now     func() time.Time
	logger  zerolog.Logger
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithGenreCache consults cache before each detail call.
func WithGenreCache(cache GenreCache) FetcherOption {
	return func(f *Fetcher) { f.cache = cache }
}

// WithDetailRateLimit paces detail calls to perSecond. Zero or less disables pacing.
func WithDetailRateLimit(perSecond float64) FetcherOption {
	return func(f *Fetcher) {
		if perSecond > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			f.limiter = nil
		}
	}
}

// WithLocation sets the timezone "yesterday" is computed in.
func WithLocation(loc *time.Location) FetcherOption {
	return func(f *Fetcher) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) { f.now = now }
}

// NewFetcher returns a Fetcher over api.
func NewFetcher(api API, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		api:    api,
		loc:    time.Local,
		now:    time.Now,
		logger: logging.WithComponent("boxoffice"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DailyBoxOffice returns yesterday's titles in KOBIS order with Genre set to
// the first KOBIS genre. Titles without a genre are left out. Only context
// errors are returned.
func (f *Fetcher) DailyBoxOffice(ctx context.Context) ([]models.BoxOfficeEntry, string, error) {
	target := TargetDate(f.now(), f.loc)

	entries, err := f.fetch(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, target, ctx.Err()
		}
		metrics.BoxOfficeFetches.WithLabelValues("aborted").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("target_date", target).Msg("Box office fetch aborted")
		return []models.BoxOfficeEntry{}, target, nil
	}

	outcome := "ok"
	if len(entries) == 0 {
		outcome = "empty"
	}
	metrics.BoxOfficeFetches.WithLabelValues(outcome).Inc()
	f.logger.Info().Str("target_date", target).Int("titles", len(entries)).Msg("Box office fetched")
	return entries, target, nil
}

func (f *Fetcher) fetch(ctx context.Context, target string) ([]models.BoxOfficeEntry, error) {
	list, err := f.api.DailyBoxOffice(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("daily box office for %s: %w", target, err)
	}

	entries := make([]models.BoxOfficeEntry, 0, len(list.Entries))
	for _, d := range list.Entries {
		rank, err := d.RankInt()
		if err != nil {
			return nil, err
		}
		sales, err := d.Sales()
		if err != nil {
			return nil, err
		}

		genre, err := f.genre(ctx, d.MovieCode)
		if err != nil {
			return nil, err
		}
		if genre == "" {
			f.logger.Debug().Str("movie_cd", d.MovieCode).Str("title", d.MovieName).Msg("No genre listed, skipping title")
			continue
		}

		entries = append(entries, models.BoxOfficeEntry{
			MovieCode: d.MovieCode,
			Title:     d.MovieName,
			Rank:      rank,
			Sales:     sales,
			Genre:     genre,
		})
	}
	return entries, nil
}

// genre resolves the primary genre of movieCode, via the cache when set.
func (f *Fetcher) genre(ctx context.Context, movieCode string) (string, error) {
	if f.cache != nil {
		g, ok, err := f.cache.Get(movieCode)
		if err != nil {
			f.logger.Warn().Err(err).Str("movie_cd", movieCode).Msg("Genre cache read failed")
		} else if ok {
			return g, nil
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	info, err := f.api.MovieInfo(ctx, movieCode)
	if err != nil {
		return "", fmt.Errorf("movie info for %s: %w", movieCode, err)
	}

	g := info.PrimaryGenre()
	if g != "" && f.cache != nil {
		if err := f.cache.Put(movieCode, g); err != nil {
			f.logger.Warn().Err(err).Str("movie_cd", movieCode).Msg("Genre cache write failed")
		}
	}
	return g, nil
}
