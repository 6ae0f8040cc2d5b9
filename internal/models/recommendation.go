// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// BoxOfficeEntry is one title from the KOBIS daily box office, with the
// first genre listed on its movie detail page. Genre is the localized
// (Korean) KOBIS name.
type BoxOfficeEntry struct {
	MovieCode string `json:"movie_code"`
	Title     string `json:"title"`
	Rank      int    `json:"rank"`
	Sales     int64  `json:"sales"`
	Genre     string `json:"genre"`
}

// GenreScore is the mean rating an age bucket gives one dataset genre.
type GenreScore struct {
	Genre   string  `json:"genre"`
	Mean    float64 `json:"mean_rating"`
	Ratings int     `json:"ratings"`
}

// Recommendation is a box office title placed for an age bucket.
// Score is nil when the title's genre has no dataset counterpart or the
// bucket never rated that genre.
type Recommendation struct {
	Position int `json:"position"`
	BoxOfficeEntry
	DatasetGenre string   `json:"dataset_genre,omitempty"`
	Score        *float64 `json:"age_group_mean_rating"`
}

// RecommendationResult is the full output of one recommendation request.
type RecommendationResult struct {
	Name            string           `json:"name"`
	Age             int              `json:"age"`
	Bucket          string           `json:"age_group"`
	TargetDate      string           `json:"target_date,omitempty"`
	GenreScores     []GenreScore     `json:"genre_scores"`
	Recommendations []Recommendation `json:"recommendations"`
}
