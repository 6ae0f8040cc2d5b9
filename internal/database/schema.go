// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
)

// Table names.
const (
	TableMovies  = "movies"
	TableRatings = "ratings"
	TableUsers   = "users"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		movie_id INTEGER PRIMARY KEY,
		title    VARCHAR NOT NULL,
		genres   VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id    INTEGER PRIMARY KEY,
		gender     VARCHAR,
		age        INTEGER NOT NULL,
		occupation INTEGER,
		zip        VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id  INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		rating   DOUBLE NOT NULL,
		rated_at BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_age ON users(age)`,
}

func (db *DB) createTables(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
