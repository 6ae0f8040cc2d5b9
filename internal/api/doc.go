// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the recommendation engine over HTTP with the Chi router.

Routes:

	POST /api/v1/recommendations        {"name": "Mina", "age": 25}; ?format=csv streams CSV
	GET  /api/v1/genres?age=25          bucket genre means, best first
	GET  /api/v1/boxoffice              yesterday's box office with genres, unranked
	GET  /api/v1/health/live            liveness
	GET  /api/v1/health/ready           readiness (dataset loaded, database reachable)
	GET  /metrics                       Prometheus

Every JSON body uses the models.APIResponse envelope. Failures map to:

	VALIDATION_ERROR        400  bad JSON, missing name or age, age outside bounds
	NO_AGE_GROUP            422  age outside every decade bucket
	EMPTY_AGE_GROUP         404  bucket users rated nothing
	BOX_OFFICE_UNAVAILABLE  502  KOBIS fetch aborted or empty; data still holds the genre chart
	NOT_READY               503  readiness probe before the dataset is loaded
	INTERNAL_ERROR          500  anything else

Global middleware: request id with logging context, real IP, panic recovery,
CORS. The /api/v1 group adds per-IP rate limiting (go-chi/httprate),
security headers and Prometheus instrumentation.
*/
package api
