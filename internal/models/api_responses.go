// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"
)

// APIResponse wraps every JSON body the HTTP API returns.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "error",
//	  "error": {"code": "NO_AGE_GROUP", "message": "No data for the entered age group"},
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the machine-readable half of an error response.
//
// Codes: VALIDATION_ERROR, NO_AGE_GROUP, EMPTY_AGE_GROUP, BOX_OFFICE_UNAVAILABLE,
// NOT_READY, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
