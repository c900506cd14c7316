// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package api serves the catalog, like and recommendation endpoints over HTTP.
//
// Every JSON response uses the models.APIResponse envelope. Handlers depend
// on the small interfaces below so tests can run against fakes.
package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MovieStore is the catalog as seen by the API.
type MovieStore interface {
	Ping(ctx context.Context) error
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	GetMoviesByIDs(ctx context.Context, ids []int64) ([]*models.Movie, error)
	ListMovies(ctx context.Context, limit, offset int) ([]*models.Movie, int64, error)
	CreateMovie(ctx context.Context, m *models.Movie) error
}

// Recommender produces recommendations. *recommend.Engine implements it.
type Recommender interface {
	RecommendForUser(ctx context.Context, userID int64) (*recommend.Result, error)
	Recommend(ctx context.Context, likedTitles []string) (*recommend.Result, error)
	Stats() recommend.Stats
}

// LikeService manages user likes. *profiles.Service implements it.
type LikeService interface {
	ToggleLike(ctx context.Context, userID, movieID int64) (bool, error)
	LikedMovies(ctx context.Context, userID int64) ([]*models.Movie, error)
}

// Handler holds the dependencies of all endpoints.
type Handler struct {
	movies    MovieStore
	engine    Recommender
	likes     LikeService
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(movies MovieStore, engine Recommender, likes LikeService) *Handler {
	return &Handler{
		movies:    movies,
		engine:    engine,
		likes:     likes,
		startTime: time.Now(),
	}
}
