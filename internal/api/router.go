// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/middleware"
)

// NewRouter builds the HTTP routes.
//
// Health probes and /metrics sit outside the rate limiter so monitoring
// keeps working under load.
func NewRouter(h *Handler, sec *config.SecurityConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sec.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(sec))

			r.Get("/movies", h.ListMovies)
			r.Post("/movies", h.CreateMovie)
			r.Get("/movies/{movieID}", h.GetMovie)

			r.Get("/recommendations/user/{userID}", h.GetUserRecommendations)
			r.Post("/recommendations", h.PostRecommendations)

			r.Get("/users/{userID}/likes", h.GetLikes)
			r.Post("/users/{userID}/likes/{movieID}", h.ToggleLike)
		})
	})

	return r
}

// rateLimit limits requests per client IP. Clients over the limit receive
// a RATE_LIMIT_EXCEEDED envelope.
func rateLimit(sec *config.SecurityConfig) func(http.Handler) http.Handler {
	if sec.RateLimitDisabled || sec.RateLimitReqs <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		sec.RateLimitReqs,
		sec.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
		}),
	)
}
