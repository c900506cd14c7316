// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/profiles"
)

// UserLikes is the payload of GET /api/v1/users/{userID}/likes.
type UserLikes struct {
	UserID int64           `json:"user_id"`
	Movies []*models.Movie `json:"movies"`
}

// GetLikes handles GET /api/v1/users/{userID}/likes.
func (h *Handler) GetLikes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID", nil)
		return
	}

	movies, err := h.likes.LikedMovies(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load likes", err)
		return
	}
	respondSuccess(w, http.StatusOK, UserLikes{UserID: userID, Movies: movies}, start, false)
}

// ToggleLike handles POST /api/v1/users/{userID}/likes/{movieID}.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID", nil)
		return
	}
	movieID, err := idParam(r, "movieID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_MOVIE_ID", "Invalid movie ID", nil)
		return
	}

	liked, err := h.likes.ToggleLike(r.Context(), userID, movieID)
	if errors.Is(err, profiles.ErrMovieNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to toggle like", err)
		return
	}

	metrics.RecordLikeToggle(liked)
	respondSuccess(w, http.StatusOK, models.LikeToggle{UserID: userID, MovieID: movieID, Liked: liked}, start, false)
}
