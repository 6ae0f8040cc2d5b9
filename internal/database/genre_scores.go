// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// genreScoresQuery explodes the pipe-separated genres into one row per
// genre, then averages the bucket's ratings per genre.
const genreScoresQuery = `
WITH exploded AS (
	SELECT movie_id, unnest(string_split(genres, '|')) AS genre
	FROM movies
)
SELECT e.genre, avg(r.rating) AS mean_rating, count(*) AS n
FROM ratings r
JOIN users u ON u.user_id = r.user_id
JOIN exploded e ON e.movie_id = r.movie_id
WHERE u.age >= ? AND u.age < ? AND e.genre <> ''
GROUP BY e.genre
ORDER BY mean_rating DESC, e.genre ASC`

// Scorer computes genre means in DuckDB. It satisfies recommend.GenreScorer.
type Scorer struct {
	db *DB
}

// NewScorer returns a scorer over the tables loaded into db.
func NewScorer(db *DB) *Scorer {
	return &Scorer{db: db}
}

// Name implements recommend.GenreScorer.
func (s *Scorer) Name() string { return "duckdb" }

// GenreScores implements recommend.GenreScorer.
func (s *Scorer) GenreScores(ctx context.Context, b recommend.Bucket) (scores []models.GenreScore, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("genre_scores", TableRatings, time.Since(start), err)
	}()

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := s.db.conn.QueryContext(ctx, genreScoresQuery, b.Min, b.Max)
	if err != nil {
		return nil, fmt.Errorf("query genre scores: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var gs models.GenreScore
		if err := rows.Scan(&gs.Genre, &gs.Mean, &gs.Ratings); err != nil {
			return nil, fmt.Errorf("scan genre score: %w", err)
		}
		scores = append(scores, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre scores: %w", err)
	}

	if len(scores) == 0 {
		return nil, recommend.ErrEmptyBucket
	}
	return scores, nil
}
