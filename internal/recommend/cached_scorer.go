// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"slices"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// CachedScorer memoizes another scorer per bucket. The dataset is loaded
// once, so a bucket's scores only change on restart. Errors, including
// ErrEmptyBucket, are not cached.
type CachedScorer struct {
	next  GenreScorer
	cache *cache.LRU[Bucket, []models.GenreScore]
}

// NewCachedScorer wraps next, keeping each bucket's scores for ttl.
func NewCachedScorer(next GenreScorer, ttl time.Duration) *CachedScorer {
	return &CachedScorer{
		next:  next,
		cache: cache.NewLRU[Bucket, []models.GenreScore](len(Buckets), ttl),
	}
}

// Name reports the wrapped scorer so metrics stay comparable.
func (s *CachedScorer) Name() string { return s.next.Name() }

// GenreScores implements GenreScorer. Callers get their own copy.
func (s *CachedScorer) GenreScores(ctx context.Context, b Bucket) ([]models.GenreScore, error) {
	if scores, ok := s.cache.Get(b); ok {
		metrics.GenreScoreCacheResults.WithLabelValues("hit").Inc()
		return slices.Clone(scores), nil
	}
	metrics.GenreScoreCacheResults.WithLabelValues("miss").Inc()

	scores, err := s.next.GenreScores(ctx, b)
	if err != nil {
		return nil, err
	}
	s.cache.Add(b, scores)
	return slices.Clone(scores), nil
}
