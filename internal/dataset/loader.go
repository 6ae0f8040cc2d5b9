// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dataset reads MovieLens 1M style "::" delimited files.
//
// The three files are read in full. A missing file or any malformed line fails
// the whole load; there is no partial dataset.
package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Separator between fields on every line.
const Separator = "::"

// ctxCheckEvery is how many lines are parsed between context checks.
const ctxCheckEvery = 50000

// maxLineBytes bounds a single line. movies.dat titles are short, this only
// guards against a wrong file being pointed at.
const maxLineBytes = 1 << 20

// ParseError reports a malformed line.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads movies, ratings and users and drops users whose age equals
// cfg.AgeSentinel.
func Load(ctx context.Context, cfg *config.DatasetConfig) (*models.Dataset, error) {
	start := time.Now()

	movies, err := LoadMovies(ctx, cfg.MoviesPath(), cfg.Encoding)
	if err != nil {
		return nil, err
	}
	ratings, err := LoadRatings(ctx, cfg.RatingsPath(), cfg.Encoding)
	if err != nil {
		return nil, err
	}
	users, err := LoadUsers(ctx, cfg.UsersPath(), cfg.Encoding)
	if err != nil {
		return nil, err
	}

	kept := FilterSentinelAge(users, cfg.AgeSentinel)
	if dropped := len(users) - len(kept); dropped > 0 {
		metrics.DatasetRowsDropped.WithLabelValues("users", "age_sentinel").Add(float64(dropped))
	}

	ds := &models.Dataset{Movies: movies, Ratings: ratings, Users: kept}
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(elapsed, len(ds.Movies), len(ds.Ratings), len(ds.Users))

	logging.Ctx(ctx).Info().
		Int("movies", len(ds.Movies)).
		Int("ratings", len(ds.Ratings)).
		Int("users", len(ds.Users)).
		Int("users_dropped", len(users)-len(kept)).
		Dur("duration", elapsed).
		Msg("Dataset loaded")

	return ds, nil
}

// FilterSentinelAge returns the users whose age is not sentinel.
func FilterSentinelAge(users []models.User, sentinel int) []models.User {
	kept := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Age != sentinel {
			kept = append(kept, u)
		}
	}
	return kept
}

// LoadMovies reads MovieID::Title::Genres lines.
func LoadMovies(ctx context.Context, path, encoding string) ([]models.Movie, error) {
	var movies []models.Movie
	err := readFile(ctx, path, encoding, 3, func(f []string) error {
		id, err := strconv.Atoi(f[0])
		if err != nil {
			return fmt.Errorf("movie id: %w", err)
		}
		movies = append(movies, models.Movie{ID: id, Title: f[1], Genres: f[2]})
		return nil
	})
	return movies, err
}

// LoadRatings reads UserID::MovieID::Rating::Timestamp lines.
func LoadRatings(ctx context.Context, path, encoding string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := readFile(ctx, path, encoding, 4, func(f []string) error {
		userID, err := strconv.Atoi(f[0])
		if err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		movieID, err := strconv.Atoi(f[1])
		if err != nil {
			return fmt.Errorf("movie id: %w", err)
		}
		score, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		ts, err := strconv.ParseInt(f[3], 10, 64)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		ratings = append(ratings, models.Rating{UserID: userID, MovieID: movieID, Score: score, Timestamp: ts})
		return nil
	})
	return ratings, err
}

// LoadUsers reads UserID::Gender::Age::Occupation::Zip-code lines.
func LoadUsers(ctx context.Context, path, encoding string) ([]models.User, error) {
	var users []models.User
	err := readFile(ctx, path, encoding, 5, func(f []string) error {
		id, err := strconv.Atoi(f[0])
		if err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		age, err := strconv.Atoi(f[2])
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		occupation, err := strconv.Atoi(f[3])
		if err != nil {
			return fmt.Errorf("occupation: %w", err)
		}
		users = append(users, models.User{ID: id, Gender: f[1], Age: age, Occupation: occupation, Zip: f[4]})
		return nil
	})
	return users, err
}

// readFile opens path, decodes it and hands each non-blank line, split into
// exactly fields parts, to parse.
func readFile(ctx context.Context, path, encoding string, fields int, parse func([]string) error) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", path).Msg("Failed to close dataset file")
		}
	}()

	scanner := bufio.NewScanner(decoder(f, encoding))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, Separator)
		if len(parts) != fields {
			return &ParseError{File: path, Line: lineNo, Err: fmt.Errorf("expected %d fields, got %d", fields, len(parts))}
		}
		if err := parse(parts); err != nil {
			return &ParseError{File: path, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// decoder wraps r for the configured encoding. Validation has already
// restricted encoding to latin1 or utf-8 spellings.
func decoder(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	default:
		return r
	}
}
