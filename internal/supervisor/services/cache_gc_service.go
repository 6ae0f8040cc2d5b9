// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
)

// GarbageCollector reclaims space from expired store entries.
// Satisfied by *boxoffice.BadgerGenreCache.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService runs a GarbageCollector on a fixed interval.
//
// GC failures are logged and retried on the next tick.
type CacheGCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
	logger   zerolog.Logger
}

// NewCacheGCService wraps gc. A non-positive interval means 10 minutes.
func NewCacheGCService(gc GarbageCollector, interval time.Duration) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{
		gc:       gc,
		interval: interval,
		name:     "genre-cache-gc",
		logger:   logging.WithComponent("genre-cache-gc"),
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("Cache GC failed")
				continue
			}
			s.logger.Debug().Dur("took", time.Since(start)).Msg("Cache GC complete")
		}
	}
}

// String names the service in supervisor logs.
func (s *CacheGCService) String() string {
	return s.name
}
