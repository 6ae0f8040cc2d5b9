// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestMovieGenreList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		genres string
		want   []string
	}{
		{"Animation|Children's|Comedy", []string{"Animation", "Children's", "Comedy"}},
		{"Drama", []string{"Drama"}},
		{"Action||Thriller", []string{"Action", "Thriller"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.genres, func(t *testing.T) {
			t.Parallel()
			got := Movie{Genres: tt.genres}.GenreList()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenreList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendationJSONFlattensEntry(t *testing.T) {
	t.Parallel()

	score := 3.75
	rec := Recommendation{
		Position:       1,
		BoxOfficeEntry: BoxOfficeEntry{MovieCode: "20240001", Title: "Wonka", Rank: 2, Sales: 100, Genre: "판타지"},
		DatasetGenre:   "Fantasy",
		Score:          &score,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"position":1`, `"title":"Wonka"`, `"rank":2`, `"age_group_mean_rating":3.75`} {
		if !strings.Contains(out, want) {
			t.Errorf("%s missing %s", out, want)
		}
	}

	rec.Score = nil
	data, _ = json.Marshal(rec)
	if !strings.Contains(string(data), `"age_group_mean_rating":null`) {
		t.Errorf("nil score should marshal as null: %s", data)
	}
}
