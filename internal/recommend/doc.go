// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package recommend ranks yesterday's box office for a viewer's age group.

The flow for one request:

 1. The viewer's age selects one of five decade buckets, [10,20) through [50,60).
 2. A GenreScorer joins the bucket's users to their ratings and to movie genre
    lists, splits multi-genre movies into one row per genre, and averages the
    rating per genre.
 3. A BoxOfficeSource returns yesterday's daily list with each title's KOBIS genre.
 4. Each title's Korean genre is mapped back to its dataset genre, given the
    bucket's mean for that genre, and the list is sorted by (mean, sales),
    both descending, with titles lacking a mean placed last.

Two GenreScorer implementations exist: MemoryScorer in this package and the
DuckDB-backed scorer in internal/database. Both recompute on every call.

Failures a viewer can cause or observe are sentinel errors (ErrMissingInput,
ErrAgeOutOfRange, ErrNoBucket, ErrEmptyBucket, ErrNoBoxOffice). Their Error
text is suitable for display.
*/
package recommend
