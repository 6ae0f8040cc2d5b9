// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func testDataset() *models.Dataset {
	return &models.Dataset{
		Movies: []models.Movie{
			{ID: 1, Title: "Toy Story (1995)", Genres: "Animation|Children's|Comedy"},
			{ID: 2, Title: "Heat (1995)", Genres: "Action|Crime|Thriller"},
			{ID: 3, Title: "Sabrina (1995)", Genres: "Comedy|Romance"},
		},
		Users: []models.User{
			{ID: 10, Age: 18},
			{ID: 20, Age: 25},
			{ID: 21, Age: 25},
			{ID: 50, Age: 56},
		},
		Ratings: []models.Rating{
			{UserID: 20, MovieID: 1, Score: 4},
			{UserID: 21, MovieID: 1, Score: 2},
			{UserID: 21, MovieID: 3, Score: 5},
			{UserID: 20, MovieID: 2, Score: 3},
			{UserID: 10, MovieID: 2, Score: 1},
			{UserID: 99, MovieID: 2, Score: 5},  // unknown user
			{UserID: 20, MovieID: 42, Score: 5}, // unknown movie
		},
	}
}

func TestMemoryScorerSingleRating(t *testing.T) {
	t.Parallel()

	ds := &models.Dataset{
		Movies:  []models.Movie{{ID: 1, Genres: "Drama"}},
		Users:   []models.User{{ID: 1, Age: 25}},
		Ratings: []models.Rating{{UserID: 1, MovieID: 1, Score: 4.0}},
	}
	scores, err := NewMemoryScorer(ds).GenreScores(context.Background(), Bucket{20, 30})
	if err != nil {
		t.Fatalf("GenreScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Genre != "Drama" || scores[0].Mean != 4.0 {
		t.Errorf("scores = %+v, want Drama=4.0", scores)
	}
}

func TestMemoryScorerExplodesGenres(t *testing.T) {
	t.Parallel()

	scores, err := NewMemoryScorer(testDataset()).GenreScores(context.Background(), Bucket{20, 30})
	if err != nil {
		t.Fatalf("GenreScores() error = %v", err)
	}
	got := ScoreIndex(scores)

	// User 10 is in the 10s bucket, so Heat only counts user 20's 3.
	want := map[string]float64{
		"Animation":  3,
		"Children's": 3,
		"Comedy":     11.0 / 3,
		"Romance":    5,
		"Action":     3,
		"Crime":      3,
		"Thriller":   3,
	}
	if len(got) != len(want) {
		t.Fatalf("genres = %v, want %v", got, want)
	}
	for g, w := range want {
		if math.Abs(got[g]-w) > 1e-9 {
			t.Errorf("%s = %v, want %v", g, got[g], w)
		}
	}

	if scores[0].Genre != "Romance" {
		t.Errorf("best genre = %q, want Romance", scores[0].Genre)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Mean > scores[i-1].Mean {
			t.Errorf("scores not sorted at %d: %+v", i, scores)
		}
	}
}

func TestMemoryScorerEmptyBucket(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryScorer(testDataset()).GenreScores(context.Background(), Bucket{40, 50})
	if !errors.Is(err, ErrEmptyBucket) {
		t.Fatalf("GenreScores() error = %v, want ErrEmptyBucket", err)
	}
}

func TestMemoryScorerCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryScorer(testDataset()).GenreScores(ctx, Bucket{20, 30})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("GenreScores() error = %v, want context.Canceled", err)
	}
}

func TestSortScoresTieBreaksByName(t *testing.T) {
	t.Parallel()

	scores := []models.GenreScore{{Genre: "War", Mean: 4}, {Genre: "Drama", Mean: 4}, {Genre: "Horror", Mean: 2}}
	SortScores(scores)
	if scores[0].Genre != "Drama" || scores[1].Genre != "War" || scores[2].Genre != "Horror" {
		t.Errorf("SortScores() = %+v", scores)
	}
}
