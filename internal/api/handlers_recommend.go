// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/report"
	"github.com/tomtom215/marquee/internal/validation"
)

// maxRequestBody bounds the recommendation request body.
const maxRequestBody = 64 << 10

// GenresRequest is the query of GET /api/v1/genres.
type GenresRequest struct {
	Age int `json:"age" validate:"required,min=1,max=120"`
}

// GenresResponse is the chart data for one bucket.
type GenresResponse struct {
	Age         int                 `json:"age"`
	Bucket      string              `json:"age_group"`
	GenreScores []models.GenreScore `json:"genre_scores"`
}

// BoxOfficeResponse is yesterday's unranked list.
type BoxOfficeResponse struct {
	TargetDate string                  `json:"target_date"`
	Entries    []models.BoxOfficeEntry `json:"entries"`
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommend.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "Request body must be a JSON object with name and age",
		}, nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondEngineError(w, r, verr, nil)
		return
	}

	res, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		// res carries the genre chart when only the box office failed.
		if res != nil {
			respondEngineError(w, r, err, res)
			return
		}
		respondEngineError(w, r, err, nil)
		return
	}

	if h.config != nil && h.config.Export.Enabled {
		if err := report.ExportCSV(h.config.Export.Path, res.Recommendations); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("path", h.config.Export.Path).Msg("CSV export failed")
		}
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "recommendations-"+res.TargetDate+".csv"))
		w.WriteHeader(http.StatusOK)
		if err := report.WriteCSV(w, res.Recommendations); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to stream CSV")
		}
		return
	}

	respondSuccess(w, start, res)
}

// Genres handles GET /api/v1/genres?age=N.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "age must be a number",
			Details: map[string]interface{}{"field": "age"},
		}, nil)
		return
	}
	req := GenresRequest{Age: age}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondEngineError(w, r, verr, nil)
		return
	}

	bucket, scores, err := h.engine.GenreScores(r.Context(), req.Age)
	if err != nil {
		respondEngineError(w, r, err, nil)
		return
	}

	respondSuccess(w, start, GenresResponse{Age: req.Age, Bucket: bucket.Label(), GenreScores: scores})
}

// BoxOffice handles GET /api/v1/boxoffice.
func (h *Handler) BoxOffice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries, target, err := h.engine.BoxOffice(r.Context())
	if err != nil {
		if errors.Is(err, recommend.ErrNoBoxOffice) {
			logging.Ctx(r.Context()).Warn().Err(err).Str("target_date", target).Msg("Box office unavailable")
		}
		respondEngineError(w, r, err, nil)
		return
	}

	respondSuccess(w, start, BoxOfficeResponse{TargetDate: target, Entries: entries})
}
