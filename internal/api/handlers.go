// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the HTTP handlers and what they depend on.
type Handler struct {
	engine    *recommend.Engine
	config    *config.Config
	db        Pinger // nil unless the DuckDB scorer is in use
	ready     atomic.Bool
	startTime time.Time
}

// NewHandler builds a Handler. db may be nil.
func NewHandler(engine *recommend.Engine, cfg *config.Config, db Pinger) *Handler {
	return &Handler{
		engine:    engine,
		config:    cfg,
		db:        db,
		startTime: time.Now(),
	}
}

// SetReady flips the readiness probe once the dataset is loaded.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}
