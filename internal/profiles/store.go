// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package profiles manages the movies each user likes and exposes them to
// the recommendation engine as seed titles.
//
// Likes live either in the DuckDB catalog database or in a separate Badger
// key-value store, selected by profiles.store.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/models"
)

var (
	// ErrMovieNotFound is returned when liking a movie that is not in the catalog.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUnknownStore is returned for an unsupported profiles.store value.
	ErrUnknownStore = errors.New("unknown profile store")
)

// Store persists likes as ordered sets of movie IDs per user.
type Store interface {
	// LikedMovieIDs returns the user's liked movies, oldest like first.
	LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error)

	// ToggleLike flips the like and reports whether the movie is liked afterwards.
	ToggleLike(ctx context.Context, userID, movieID int64) (bool, error)
}

// MovieLookup resolves movie IDs against the catalog.
type MovieLookup interface {
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	GetMoviesByIDs(ctx context.Context, ids []int64) ([]*models.Movie, error)
}

// NewStore returns the store selected by cfg. The returned closer releases
// resources owned by the store; it is a no-op for the DuckDB store, whose
// connection belongs to the caller.
func NewStore(cfg *config.ProfilesConfig, db *database.DB) (Store, io.Closer, error) {
	switch strings.ToLower(cfg.Store) {
	case "", config.StoreDuckDB:
		return db, nopCloser{}, nil
	case config.StoreBadger:
		s, err := OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
