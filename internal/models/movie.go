// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package models holds the records shared by the database, profile and API layers.
package models

import "time"

// Person roles on a movie.
const (
	RoleDirector = "director"
	RoleActor    = "actor"
)

// Movie is the full catalog record.
type Movie struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Genres          string    `json:"genres"`
	Year            int       `json:"year"`
	DurationMinutes int       `json:"duration_minutes"`
	IMDbScore       float64   `json:"imdb_score"`
	ImagePath       string    `json:"image_path,omitempty"`
	Directors       []string  `json:"directors,omitempty"`
	Actors          []string  `json:"actors,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateMovieRequest is the body of POST /api/v1/movies.
type CreateMovieRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Genres          string   `json:"genres" validate:"max=100"`
	Year            int      `json:"year" validate:"required,gte=1888,notfuture"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	IMDbScore       float64  `json:"imdb_score" validate:"gte=0,lte=10"`
	ImagePath       string   `json:"image_path" validate:"omitempty,max=500"`
	Directors       []string `json:"directors" validate:"max=20,dive,required,max=100"`
	Actors          []string `json:"actors" validate:"max=50,dive,required,max=100"`
}

// Movie converts the request into a record without an ID.
func (r *CreateMovieRequest) Movie() *Movie {
	return &Movie{
		Title:           r.Title,
		Genres:          r.Genres,
		Year:            r.Year,
		DurationMinutes: r.DurationMinutes,
		IMDbScore:       r.IMDbScore,
		ImagePath:       r.ImagePath,
		Directors:       r.Directors,
		Actors:          r.Actors,
	}
}

// Profile is a user's profile. Liked movies are stored separately.
type Profile struct {
	UserID     int64      `json:"user_id"`
	Username   string     `json:"username,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	SignupDate *time.Time `json:"signup_date,omitempty"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Titles []string `json:"titles" validate:"max=50,dive,max=200"`
}

// Recommendation is the payload of a recommendation response.
type Recommendation struct {
	MovieIDs   []int64  `json:"movie_ids"`
	Movies     []*Movie `json:"movies"`
	Seeds      []string `json:"seeds"`
	SeedSource string   `json:"seed_source"`
}

// LikeToggle is the payload of a like toggle response.
type LikeToggle struct {
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
	Liked   bool  `json:"liked"`
}
