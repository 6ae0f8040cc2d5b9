// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// Error codes carried in models.APIError.Code.
const (
	ErrCodeValidation       = validation.ErrorCode
	ErrCodeNoAgeGroup       = "NO_AGE_GROUP"
	ErrCodeEmptyAgeGroup    = "EMPTY_AGE_GROUP"
	ErrCodeBoxOffice        = "BOX_OFFICE_UNAVAILABLE"
	ErrCodeNotReady         = "NOT_READY"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound         = "NOT_FOUND"
)

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondSuccess(w http.ResponseWriter, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes an error envelope. data may carry a partial result.
func respondError(w http.ResponseWriter, status int, apiErr *models.APIError, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// errorFor maps an engine error to its HTTP status and envelope error.
func errorFor(err error) (int, *models.APIError) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		e := verr.ToAPIError()
		return http.StatusBadRequest, &models.APIError{Code: e.Code, Message: e.Message, Details: e.Details}
	case errors.Is(err, recommend.ErrMissingInput):
		return http.StatusBadRequest, &models.APIError{Code: ErrCodeValidation, Message: userMessage(recommend.ErrMissingInput)}
	case errors.Is(err, recommend.ErrAgeOutOfRange):
		return http.StatusBadRequest, &models.APIError{Code: ErrCodeValidation, Message: userMessage(err)}
	case errors.Is(err, recommend.ErrNoBucket):
		return http.StatusUnprocessableEntity, &models.APIError{Code: ErrCodeNoAgeGroup, Message: userMessage(recommend.ErrNoBucket)}
	case errors.Is(err, recommend.ErrEmptyBucket):
		return http.StatusNotFound, &models.APIError{Code: ErrCodeEmptyAgeGroup, Message: userMessage(recommend.ErrEmptyBucket)}
	case errors.Is(err, recommend.ErrNoBoxOffice):
		return http.StatusBadGateway, &models.APIError{Code: ErrCodeBoxOffice, Message: userMessage(recommend.ErrNoBoxOffice)}
	default:
		return http.StatusInternalServerError, &models.APIError{Code: ErrCodeInternal, Message: "Internal server error"}
	}
}

// userMessage capitalizes the first letter of err's text for display.
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// respondEngineError writes err, logging only internal failures.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error, data interface{}) {
	status, apiErr := errorFor(err)
	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("API request failed")
	}
	respondError(w, status, apiErr, data)
}
