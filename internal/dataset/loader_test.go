// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

// writeFixture writes a small MovieLens-shaped dataset. The movie title on
// line 2 contains 0xE9, "é" in ISO-8859-1.
func writeFixture(t *testing.T) *config.DatasetConfig {
	t.Helper()
	dir := t.TempDir()

	files := map[string][]byte{
		"movies.dat": []byte("1::Toy Story (1995)::Animation|Children's|Comedy\n" +
			"2::Les Mis\xe9rables (1995)::Drama|Musical\r\n" +
			"3::Heat (1995)::Action|Crime|Thriller\n"),
		"ratings.dat": []byte("1::1::5::978300760\n" +
			"2::2::3::978302109\n" +
			"\n" +
			"3::3::4::978301968\n"),
		"users.dat": []byte("1::F::1::10::48067\n" +
			"2::M::25::16::70072\n" +
			"3::M::45::7::55117\n"),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), body, 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return &config.DatasetConfig{
		Dir:         dir,
		MoviesFile:  "movies.dat",
		RatingsFile: "ratings.dat",
		UsersFile:   "users.dat",
		Encoding:    "latin1",
		AgeSentinel: 1,
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg := writeFixture(t)
	ds, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(ds.Movies) != 3 {
		t.Errorf("movies = %d, want 3", len(ds.Movies))
	}
	if len(ds.Ratings) != 3 {
		t.Errorf("ratings = %d, want 3 (blank line skipped)", len(ds.Ratings))
	}
	if len(ds.Users) != 2 {
		t.Fatalf("users = %d, want 2 (sentinel age dropped)", len(ds.Users))
	}
	for _, u := range ds.Users {
		if u.Age == 1 {
			t.Errorf("user %d with sentinel age survived", u.ID)
		}
	}
	if got := ds.Movies[1].Title; got != "Les Misérables (1995)" {
		t.Errorf("latin1 title = %q", got)
	}
	if got := ds.Movies[1].Genres; got != "Drama|Musical" {
		t.Errorf("genres = %q, CR should be trimmed", got)
	}
	if ds.Ratings[2].Score != 4 || ds.Ratings[2].MovieID != 3 {
		t.Errorf("rating = %+v", ds.Ratings[2])
	}
}

func TestLoadUTF8(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "movies.dat")
	if err := os.WriteFile(path, []byte("7::Amélie (2001)::Comedy|Romance\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	movies, err := LoadMovies(context.Background(), path, "utf-8")
	if err != nil {
		t.Fatalf("LoadMovies() error = %v", err)
	}
	if movies[0].Title != "Amélie (2001)" {
		t.Errorf("title = %q", movies[0].Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg := writeFixture(t)
	cfg.UsersFile = "absent.dat"

	_, err := Load(context.Background(), cfg)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadMalformedLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		body string
		line int
	}{
		{"too few fields", "ratings.dat", "1::1::5::978300760\n1::2::4\n", 2},
		{"non numeric rating", "ratings.dat", "1::1::five::978300760\n", 1},
		{"non numeric age", "users.dat", "1::F::adult::10::48067\n", 1},
		{"comma separated", "movies.dat", "1,Toy Story,Animation\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := writeFixture(t)
			if err := os.WriteFile(filepath.Join(cfg.Dir, tt.file), []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(context.Background(), cfg)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load() error = %v, want *ParseError", err)
			}
			if perr.Line != tt.line {
				t.Errorf("Line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestFilterSentinelAge(t *testing.T) {
	t.Parallel()

	users := []models.User{{ID: 1, Age: 1}, {ID: 2, Age: 18}, {ID: 3, Age: 1}, {ID: 4, Age: 56}}
	kept := FilterSentinelAge(users, 1)
	if len(kept) != 2 || kept[0].ID != 2 || kept[1].ID != 4 {
		t.Errorf("FilterSentinelAge() = %+v", kept)
	}
}
