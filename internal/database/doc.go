// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package database holds the MovieLens tables in DuckDB and computes
// per-bucket genre means in SQL.
//
// Files:
//   - database.go: connection lifecycle, pool settings, checkpoint
//   - schema.go: movies, users and ratings tables
//   - load.go: transactional bulk load of a models.Dataset
//   - genre_scores.go: Scorer, the SQL implementation of recommend.GenreScorer
//
// The in-memory scorer in package recommend gives identical results; this
// one is selected with recommend.scorer: duckdb and keeps the raw tables
// queryable when database.path points at a file.
package database
