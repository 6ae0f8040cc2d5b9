// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package boxoffice fetches the KOBIS daily box office.

Layers, outermost first:

  - Fetcher: computes yesterday's target date, walks the ranked list and
    resolves each title's first genre with one detail call. Any failure
    aborts to an empty list. Satisfies recommend.BoxOfficeSource.
  - GenreCache (optional): BadgerDB store of movie code to genre with a TTL,
    so repeat fetches skip detail calls for titles already seen.
  - BreakerClient: sony/gobreaker circuit breaker with Prometheus gauges.
  - Client: plain HTTP GET with XML decoding. Non-200 responses wrap
    ErrUnexpectedStatus and faultInfo payloads wrap ErrAPIFault.
*/
package boxoffice
