// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides the HTTP middleware shared by the API router.

  - RequestID: accepts or generates X-Request-ID and stores it, plus a fresh
    correlation id, in the request context for logging.Ctx.
  - PrometheusMetrics: records api_requests_total, api_request_duration_seconds
    and api_active_requests, labelled by chi route pattern so path parameters
    do not explode label cardinality.

Both are plain func(http.Handler) http.Handler and compose with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
