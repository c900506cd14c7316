// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// MovieList is the payload of GET /api/v1/movies.
type MovieList struct {
	Movies     []*models.Movie   `json:"movies"`
	Pagination models.Pagination `json:"pagination"`
}

// ListMovies handles GET /api/v1/movies?limit=&offset=.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := getIntParam(r, "limit", defaultPageSize)
	offset := getIntParam(r, "offset", 0)
	if limit < 1 || limit > maxPageSize {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 500", nil)
		return
	}
	if offset < 0 {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "offset must be non-negative", nil)
		return
	}

	movies, total, err := h.movies.ListMovies(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list movies", err)
		return
	}

	respondSuccess(w, http.StatusOK, MovieList{
		Movies:     movies,
		Pagination: models.Pagination{Limit: limit, Offset: offset, Total: total},
	}, start, false)
}

// GetMovie handles GET /api/v1/movies/{movieID}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := idParam(r, "movieID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_MOVIE_ID", "Invalid movie ID", nil)
		return
	}

	movie, err := h.movies.GetMovie(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load movie", err)
		return
	}

	respondSuccess(w, http.StatusOK, movie, start, false)
}

// CreateMovie handles POST /api/v1/movies.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateMovieRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	movie := req.Movie()
	if err := h.movies.CreateMovie(r.Context(), movie); err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create movie", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("movie_id", movie.ID).
		Str("title", sanitizeLogValue(movie.Title)).
		Msg("movie created")
	respondSuccess(w, http.StatusCreated, movie, start, false)
}
