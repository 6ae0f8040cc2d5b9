// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// LoadDataset replaces the contents of the three tables with ds in a single
// transaction. Movies and users go through prepared inserts; ratings, the
// bulk of the data, go through the DuckDB appender on the same connection.
func (db *DB) LoadDataset(ctx context.Context, ds *models.Dataset) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("load", "dataset", time.Since(start), err)
	}()

	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer closeWithLog(conn, "connection")

	if _, err = conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			// ctx may already be cancelled.
			if _, rbErr := conn.ExecContext(context.Background(), "ROLLBACK"); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	for _, table := range []string{TableRatings, TableUsers, TableMovies} {
		if _, err = conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = insertRows(ctx, conn, TableMovies,
		`INSERT INTO movies (movie_id, title, genres) VALUES (?, ?, ?)`,
		len(ds.Movies), func(stmt *sql.Stmt, i int) error {
			m := ds.Movies[i]
			_, err := stmt.ExecContext(ctx, m.ID, m.Title, m.Genres)
			return err
		}); err != nil {
		return err
	}

	if err = insertRows(ctx, conn, TableUsers,
		`INSERT INTO users (user_id, gender, age, occupation, zip) VALUES (?, ?, ?, ?, ?)`,
		len(ds.Users), func(stmt *sql.Stmt, i int) error {
			u := ds.Users[i]
			_, err := stmt.ExecContext(ctx, u.ID, u.Gender, u.Age, u.Occupation, u.Zip)
			return err
		}); err != nil {
		return err
	}

	if err = appendRatings(ctx, conn, ds.Ratings); err != nil {
		return err
	}

	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Info().
		Int("movies", len(ds.Movies)).
		Int("users", len(ds.Users)).
		Int("ratings", len(ds.Ratings)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded into DuckDB")
	return nil
}

func insertRows(ctx context.Context, conn *sql.Conn, table, query string, n int, exec func(*sql.Stmt, int) error) error {
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range n {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("insert into %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// appendCtxCheckEvery bounds how many ratings are appended between
// context checks.
const appendCtxCheckEvery = 10000

// appendRatings streams ratings through a DuckDB appender. The appender
// shares conn, so its rows belong to the open transaction.
func appendRatings(ctx context.Context, conn *sql.Conn, ratings []models.Rating) error {
	err := conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}
		appender, err := duckdb.NewAppenderFromConn(dc, "", TableRatings)
		if err != nil {
			return fmt.Errorf("failed to create ratings appender: %w", err)
		}

		for i, r := range ratings {
			if i%appendCtxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return errors.Join(err, appender.Close())
				}
			}
			if err := appender.AppendRow(int32(r.UserID), int32(r.MovieID), r.Score, r.Timestamp); err != nil {
				return errors.Join(fmt.Errorf("append rating row %d: %w", i, err), appender.Close())
			}
		}
		// Close flushes the remaining rows.
		return appender.Close()
	})
	if err != nil {
		return fmt.Errorf("load %s: %w", TableRatings, err)
	}
	return nil
}

// Counts returns the row count of each table.
func (db *DB) Counts(ctx context.Context) (map[string]int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	out := make(map[string]int, 3)
	for _, table := range []string{TableMovies, TableUsers, TableRatings} {
		var n int
		if err := db.conn.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}
