// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func TestRank(t *testing.T) {
	t.Parallel()

	entries := []models.BoxOfficeEntry{
		{Title: "A", Rank: 1, Sales: 900, Genre: "액션"},
		{Title: "B", Rank: 2, Sales: 800, Genre: "드라마"},
		{Title: "C", Rank: 3, Sales: 700, Genre: "사극"}, // no dataset genre
		{Title: "D", Rank: 4, Sales: 950, Genre: "드라마"},
		{Title: "E", Rank: 5, Sales: 990, Genre: "호러"}, // mapped, but bucket never rated it
		{Title: "F", Rank: 6, Sales: 100, Genre: "코미디"},
	}
	means := map[string]float64{"Action": 3.5, "Drama": 4.1, "Comedy": 3.5}

	recs := Rank(entries, means)

	wantOrder := []string{"D", "B", "A", "F", "E", "C"}
	if len(recs) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(recs), len(wantOrder))
	}
	for i, title := range wantOrder {
		if recs[i].Title != title {
			t.Errorf("position %d = %s, want %s", i+1, recs[i].Title, title)
		}
		if recs[i].Position != i+1 {
			t.Errorf("%s Position = %d, want %d", recs[i].Title, recs[i].Position, i+1)
		}
	}

	if recs[0].DatasetGenre != "Drama" || recs[0].Score == nil || *recs[0].Score != 4.1 {
		t.Errorf("D = %+v", recs[0])
	}
	if recs[4].DatasetGenre != "Horror" || recs[4].Score != nil {
		t.Errorf("E should map to Horror with no score: %+v", recs[4])
	}
	if recs[5].DatasetGenre != "" || recs[5].Score != nil {
		t.Errorf("C should have no mapping: %+v", recs[5])
	}
}

func TestRankNonIncreasing(t *testing.T) {
	t.Parallel()

	entries := []models.BoxOfficeEntry{
		{Title: "1", Sales: 5, Genre: "SF"},
		{Title: "2", Sales: 50, Genre: "SF"},
		{Title: "3", Sales: 7, Genre: "전쟁"},
		{Title: "4", Sales: 7, Genre: "전쟁"},
		{Title: "5", Sales: 1, Genre: "모험"},
	}
	means := map[string]float64{"Sci-Fi": 3.2, "War": 3.9, "Adventure": 3.2}

	recs := Rank(entries, means)
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if *cur.Score > *prev.Score || (*cur.Score == *prev.Score && cur.Sales > prev.Sales) {
			t.Errorf("order violated at %d: %+v then %+v", i, prev, cur)
		}
	}
	// equal (score, sales) keeps input order
	if recs[0].Title != "3" || recs[1].Title != "4" {
		t.Errorf("stable tie broken: %s, %s", recs[0].Title, recs[1].Title)
	}
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()

	if recs := Rank(nil, nil); len(recs) != 0 {
		t.Errorf("Rank(nil) = %v", recs)
	}
}
