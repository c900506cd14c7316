// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Service combines a like Store with the catalog.
type Service struct {
	store  Store
	movies MovieLookup
	logger zerolog.Logger
}

// NewService creates a profile service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store Store, movies MovieLookup, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		movies: movies,
		logger: logger.With().Str("component", "profiles").Logger(),
	}
}

// ToggleLike flips userID's like of movieID. Movies missing from the
// catalog return ErrMovieNotFound.
func (s *Service) ToggleLike(ctx context.Context, userID, movieID int64) (bool, error) {
	if _, err := s.movies.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, ErrMovieNotFound
		}
		return false, fmt.Errorf("look up movie %d: %w", movieID, err)
	}

	liked, err := s.store.ToggleLike(ctx, userID, movieID)
	if errors.Is(err, database.ErrNotFound) {
		// Deleted between the lookup and the toggle.
		return false, ErrMovieNotFound
	}
	if err != nil {
		return false, err
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int64("movie_id", movieID).
		Bool("liked", liked).
		Msg("like toggled")
	return liked, nil
}

// LikedMovieIDs returns the user's likes, oldest first.
func (s *Service) LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.store.LikedMovieIDs(ctx, userID)
}

// LikedMovies returns the liked movies in like order. Likes of movies no
// longer in the catalog are skipped.
func (s *Service) LikedMovies(ctx context.Context, userID int64) ([]*models.Movie, error) {
	ids, err := s.store.LikedMovieIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Movie{}, nil
	}
	movies, err := s.movies.GetMoviesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve liked movies: %w", err)
	}
	return movies, nil
}

// FetchLikedTitles returns the titles of the user's liked movies.
func (s *Service) FetchLikedTitles(ctx context.Context, userID int64) ([]string, error) {
	movies, err := s.LikedMovies(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles, nil
}

var _ recommend.LikesProvider = (*Service)(nil)
