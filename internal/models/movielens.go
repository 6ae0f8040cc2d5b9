// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "strings"

// GenreSeparator splits Movie.Genres.
const GenreSeparator = "|"

// User is a row of users.dat: UserID::Gender::Age::Occupation::Zip-code.
type User struct {
	ID         int    `json:"user_id"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Occupation int    `json:"occupation"`
	Zip        string `json:"zip"`
}

// Rating is a row of ratings.dat: UserID::MovieID::Rating::Timestamp.
type Rating struct {
	UserID    int     `json:"user_id"`
	MovieID   int     `json:"movie_id"`
	Score     float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

// Movie is a row of movies.dat: MovieID::Title::Genres.
type Movie struct {
	ID     int    `json:"movie_id"`
	Title  string `json:"title"`
	Genres string `json:"genres"`
}

// GenreList splits Genres on "|", dropping empty parts.
func (m Movie) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	parts := strings.Split(m.Genres, GenreSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dataset is the fully loaded, filtered MovieLens data.
type Dataset struct {
	Movies  []Movie
	Ratings []Rating
	Users   []User
}
