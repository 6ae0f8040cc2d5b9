// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package boxoffice

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	genreKeyPrefix = "genre:"
	gcDiscardRatio = 0.5
)

// GenreCache remembers the primary KOBIS genre of a movie code.
type GenreCache interface {
	Get(movieCode string) (genre string, ok bool, err error)
	Put(movieCode, genre string) error
}

// BadgerGenreCache is a GenreCache on BadgerDB. Entries expire after ttl.
type BadgerGenreCache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerGenreCache opens (or creates) a cache directory at path.
func OpenBadgerGenreCache(path string, ttl time.Duration) (*BadgerGenreCache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for genre cache: %w", err)
	}
	return NewBadgerGenreCache(db, ttl), nil
}

// NewBadgerGenreCache uses an already open db.
func NewBadgerGenreCache(db *badger.DB, ttl time.Duration) *BadgerGenreCache {
	return &BadgerGenreCache{db: db, ttl: ttl}
}

// Get looks up movieCode. A miss is not an error.
func (c *BadgerGenreCache) Get(movieCode string) (string, bool, error) {
	var genre string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(genreKeyPrefix + movieCode))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			genre = string(val)
			return nil
		})
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.DetailCacheMisses.Inc()
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get cached genre: %w", err)
	}
	metrics.DetailCacheHits.Inc()
	return genre, true, nil
}

// Put stores genre for movieCode.
func (c *BadgerGenreCache) Put(movieCode, genre string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(genreKeyPrefix+movieCode), []byte(genre))
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// RunGC rewrites value log files until badger reports nothing left to reclaim.
// Expired entries only free disk space after this runs.
func (c *BadgerGenreCache) RunGC() error {
	for {
		err := c.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("genre cache value log GC: %w", err)
		}
	}
}

// Close closes the underlying database.
func (c *BadgerGenreCache) Close() error {
	return c.db.Close()
}
