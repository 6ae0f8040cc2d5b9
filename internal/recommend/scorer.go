// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sort"

	"github.com/tomtom215/marquee/internal/models"
)

// GenreScorer computes the mean rating per genre for the users in a bucket.
// Implementations return ErrEmptyBucket when the join yields no rows.
type GenreScorer interface {
	Name() string
	GenreScores(ctx context.Context, b Bucket) ([]models.GenreScore, error)
}

// MemoryScorer aggregates over a dataset held in memory.
type MemoryScorer struct {
	ages    map[int]int      // user id -> age
	genres  map[int][]string // movie id -> genres
	ratings []models.Rating
}

// NewMemoryScorer indexes ds. ds must not be modified afterwards.
func NewMemoryScorer(ds *models.Dataset) *MemoryScorer {
	s := &MemoryScorer{
		ages:    make(map[int]int, len(ds.Users)),
		genres:  make(map[int][]string, len(ds.Movies)),
		ratings: ds.Ratings,
	}
	for _, u := range ds.Users {
		s.ages[u.ID] = u.Age
	}
	for _, m := range ds.Movies {
		s.genres[m.ID] = m.GenreList()
	}
	return s
}

// Name implements GenreScorer.
func (s *MemoryScorer) Name() string { return "memory" }

type genreSum struct {
	sum   float64
	count int
}

// GenreScores implements GenreScorer. Ratings whose user is not in the
// bucket, or whose user or movie is unknown, are skipped: an inner join.
func (s *MemoryScorer) GenreScores(ctx context.Context, b Bucket) ([]models.GenreScore, error) {
	sums := make(map[string]*genreSum)
	for i, r := range s.ratings {
		if i%100000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		age, ok := s.ages[r.UserID]
		if !ok || !b.Contains(age) {
			continue
		}
		genres, ok := s.genres[r.MovieID]
		if !ok {
			continue
		}
		for _, g := range genres {
			acc := sums[g]
			if acc == nil {
				acc = &genreSum{}
				sums[g] = acc
			}
			acc.sum += r.Score
			acc.count++
		}
	}
	if len(sums) == 0 {
		return nil, ErrEmptyBucket
	}

	scores := make([]models.GenreScore, 0, len(sums))
	for g, acc := range sums {
		scores = append(scores, models.GenreScore{Genre: g, Mean: acc.sum / float64(acc.count), Ratings: acc.count})
	}
	SortScores(scores)
	return scores, nil
}

// SortScores orders by mean descending, then genre name ascending.
func SortScores(scores []models.GenreScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Mean != scores[j].Mean {
			return scores[i].Mean > scores[j].Mean
		}
		return scores[i].Genre < scores[j].Genre
	})
}

// ScoreIndex maps genre to mean.
func ScoreIndex(scores []models.GenreScore) map[string]float64 {
	idx := make(map[string]float64, len(scores))
	for _, s := range scores {
		idx[s.Genre] = s.Mean
	}
	return idx
}
