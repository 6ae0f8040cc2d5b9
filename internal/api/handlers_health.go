// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive answers the liveness probe: 200 while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady answers 200 once the dataset is loaded and, when a database
// is configured, it responds to a ping. Otherwise 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	datasetLoaded := h.ready.Load()
	dbConnected := true
	if h.db != nil {
		dbConnected = h.db.Ping(r.Context()) == nil
	}
	ready := datasetLoaded && dbConnected

	data := map[string]interface{}{
		"dataset_loaded":     datasetLoaded,
		"database_connected": dbConnected,
		"ready_to_serve":     ready,
		"uptime":             time.Since(h.startTime).Seconds(),
	}

	if !ready {
		respondError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeNotReady,
			Message: "Service is not ready",
		}, data)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "ready",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
