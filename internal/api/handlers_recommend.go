// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// GetUserRecommendations handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID", nil)
		return
	}

	result, err := h.engine.RecommendForUser(r.Context(), userID)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}
	h.respondRecommendation(w, r, result, start)
}

// PostRecommendations handles POST /api/v1/recommendations with a body of
// ad-hoc seed titles. An empty list falls back to the default seeds.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	result, err := h.engine.Recommend(r.Context(), req.Titles)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}
	h.respondRecommendation(w, r, result, start)
}

// respondRecommendation attaches the full movie records in rank order.
func (h *Handler) respondRecommendation(w http.ResponseWriter, r *http.Request, result *recommend.Result, start time.Time) {
	movies := []*models.Movie{}
	if len(result.MovieIDs) > 0 {
		var err error
		movies, err = h.movies.GetMoviesByIDs(r.Context(), result.MovieIDs)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load recommended movies", err)
			return
		}
	}

	respondSuccess(w, http.StatusOK, models.Recommendation{
		MovieIDs:   result.MovieIDs,
		Movies:     movies,
		Seeds:      result.Seeds,
		SeedSource: string(result.SeedSource),
	}, start, result.IndexCached)
}

func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Catalog temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "Recommendation timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to compute recommendations", err)
	}
}
